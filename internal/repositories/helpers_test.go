package repositories

import (
	"github.com/maxaizer/hh-analytics/internal/config"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
	"time"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbCtx, err := NewDbContext(config.DBConfig{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "headhunter.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbCtx.Close() })

	require.NoError(t, dbCtx.DefineSchema())
	return dbCtx
}

func company(id, name string) models.Company {
	return models.Company{
		CompanyID:   id,
		CompanyName: name,
		CompanyUrl:  "https://api.hh.ru/employers/" + id,
	}
}

func vacancy(id, companyID, name string, salary int, currency *string) models.Vacancy {
	return models.Vacancy{
		VacancyID:      id,
		CompanyID:      companyID,
		VacancyName:    name,
		Salary:         salary,
		SalaryCurrency: currency,
		PublishedAt:    time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC),
		VacancyUrl:     "https://api.hh.ru/vacancies/" + id,
	}
}

func countRows(t *testing.T, dbCtx *DbContext, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, dbCtx.DB.Model(model).Count(&count).Error)
	return count
}

func configWithMissingDirectory(t *testing.T) config.DBConfig {
	return config.DBConfig{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "missing", "nested", "headhunter.db"),
	}
}
