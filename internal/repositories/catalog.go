package repositories

import (
	"context"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/maxaizer/hh-analytics/internal/logger"
	"github.com/maxaizer/hh-analytics/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"strings"
	"time"
)

// Catalog answers the fixed set of read-only analytical queries over companies and vacancies.
// Each query runs on its own pooled connection which is released when the query returns.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// CompaniesWithVacancyCount lists companies having at least one vacancy with their vacancy count.
func (c *Catalog) CompaniesWithVacancyCount(ctx context.Context) ([]models.CompanyVacanciesCount, error) {
	var rows []models.CompanyVacanciesCount

	err := c.run(ctx, "companies_with_vacancy_count", func(tx *gorm.DB) error {
		return tx.Table("companies AS c").
			Select("c.company_name, COUNT(v.vacancy_id) AS vacancies_count").
			Joins("JOIN vacancies AS v ON v.company_id = c.company_id").
			Group("c.company_id, c.company_name").
			Order("c.company_name ASC, c.company_id ASC").
			Scan(&rows).Error
	})

	return nonNil(rows), err
}

func (c *Catalog) AllVacancies(ctx context.Context) ([]models.VacancyWithCompany, error) {
	var rows []models.VacancyWithCompany

	err := c.run(ctx, "all_vacancies", func(tx *gorm.DB) error {
		return tx.Table("vacancies AS v").
			Select("v.vacancy_name, c.company_name, v.salary, v.salary_currency, v.vacancy_url").
			Joins("JOIN companies AS c ON c.company_id = v.company_id").
			Order("v.vacancy_name ASC, v.vacancy_id ASC").
			Scan(&rows).Error
	})

	return nonNil(rows), err
}

// AverageSalary averages salaries per currency. Vacancies with unspecified (zero) salary are excluded.
func (c *Catalog) AverageSalary(ctx context.Context) ([]models.AverageSalary, error) {
	var rows []models.AverageSalary

	err := c.run(ctx, "average_salary", func(tx *gorm.DB) error {
		return tx.Model(&models.Vacancy{}).
			Select("AVG(salary) AS average_salary, salary_currency").
			Where("salary <> 0").
			Group("salary_currency").
			Order("salary_currency ASC").
			Scan(&rows).Error
	})

	return nonNil(rows), err
}

// VacanciesWithHigherSalary returns vacancies paid above the average over all vacancies.
// Unlike AverageSalary the average includes zero salaries.
func (c *Catalog) VacanciesWithHigherSalary(ctx context.Context) ([]models.VacancySalary, error) {
	var rows []models.VacancySalary

	err := c.run(ctx, "vacancies_with_higher_salary", func(tx *gorm.DB) error {
		average := tx.Model(&models.Vacancy{}).Select("AVG(salary)")
		return tx.Model(&models.Vacancy{}).
			Select("vacancy_name, salary, salary_currency").
			Where("salary > (?)", average).
			Order("salary DESC, vacancy_name ASC").
			Scan(&rows).Error
	})

	return nonNil(rows), err
}

// VacanciesWithKeyword returns vacancies whose name contains any of the whitespace separated
// keywords, ignoring case. No keywords means no vacancies.
func (c *Catalog) VacanciesWithKeyword(ctx context.Context, keywords string) ([]models.VacancySalary, error) {
	words := ParseKeywords(keywords)
	if len(words) == 0 {
		return []models.VacancySalary{}, nil
	}

	var rows []models.VacancySalary

	// SQLite LOWER and LIKE fold ASCII only, so matching happens here for every driver.
	err := c.run(ctx, "vacancies_with_keyword", func(tx *gorm.DB) error {
		return tx.Model(&models.Vacancy{}).
			Select("vacancy_name, salary, salary_currency").
			Order("vacancy_name ASC, vacancy_id ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return []models.VacancySalary{}, err
	}

	return lo.Filter(rows, func(row models.VacancySalary, _ int) bool {
		return containsAny(row.VacancyName, words)
	}), nil
}

// ParseKeywords splits on whitespace and lower-cases the keywords, dropping duplicates.
func ParseKeywords(keywords string) []string {
	return lo.Uniq(lo.Map(strings.Fields(keywords), func(word string, _ int) string {
		return strings.ToLower(word)
	}))
}

func containsAny(name string, lowerWords []string) bool {
	lowerName := strings.ToLower(name)
	return lo.SomeBy(lowerWords, func(word string) bool {
		return strings.Contains(lowerName, word)
	})
}

func (c *Catalog) run(ctx context.Context, query string, fn func(tx *gorm.DB) error) error {
	start := time.Now()
	defer func() {
		metrics.QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}()

	err := c.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(conn.Session(&gorm.Session{}))
	})
	if err == nil {
		return nil
	}

	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("query %s failed: %v", query, err)
	return models.NewStoreError(models.ErrStoreUnavailable, query, err)
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
