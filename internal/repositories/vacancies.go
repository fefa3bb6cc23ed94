package repositories

import (
	"context"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultBatchSize = 100

type Vacancies struct {
	db        *gorm.DB
	batchSize int
}

func NewVacanciesRepository(db *gorm.DB, batchSize int) *Vacancies {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Vacancies{db: db, batchSize: batchSize}
}

// ReplaceAll clears both relations and writes the given rows in one transaction.
// Companies are written before the vacancies that reference them.
func (v *Vacancies) ReplaceAll(ctx context.Context, companies []models.Company, vacancies []models.Vacancy) error {
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Vacancy{}).Error; err != nil {
			return classifyStoreError("clear vacancies", err)
		}

		if err := tx.Where("1 = 1").Delete(&models.Company{}).Error; err != nil {
			return classifyStoreError("clear companies", err)
		}

		if len(companies) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(companies, v.batchSize).Error; err != nil {
				return classifyStoreError("insert companies", err)
			}
		}

		if len(vacancies) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(vacancies, v.batchSize).Error; err != nil {
				return classifyStoreError("insert vacancies", err)
			}
		}

		return nil
	})

	if err != nil {
		return classifyStoreError("replace vacancies", err)
	}
	return nil
}
