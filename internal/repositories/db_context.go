package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/hh-analytics/internal/config"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"strings"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(cfg config.DBConfig) (*DbContext, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		dialector = sqlite.Open(withForeignKeys(cfg.DSN()))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, models.NewStoreError(models.ErrConnection, "open", err)
	}

	return &DbContext{DB: db}, nil
}

// withForeignKeys turns on foreign key enforcement for every pooled SQLite connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// DefineSchema drops companies and vacancies and creates them again.
// On failure the store is left in an undefined state and DefineSchema has to be re-run.
func (c *DbContext) DefineSchema() error {
	migrator := c.DB.Migrator()

	if err := migrator.DropTable(&models.Vacancy{}); err != nil {
		return fmt.Errorf("failed to drop vacancies table: %w", classifyStoreError("drop vacancies", err))
	}

	if err := migrator.DropTable(&models.Company{}); err != nil {
		return fmt.Errorf("failed to drop companies table: %w", classifyStoreError("drop companies", err))
	}

	return c.createTables()
}

// EnsureSchema creates the relations that are missing and keeps existing data.
func (c *DbContext) EnsureSchema() error {
	migrator := c.DB.Migrator()
	if migrator.HasTable(&models.Company{}) && migrator.HasTable(&models.Vacancy{}) {
		return nil
	}
	return c.createTables()
}

func (c *DbContext) createTables() error {
	if err := c.DB.AutoMigrate(&models.Company{}); err != nil {
		return fmt.Errorf("failed to migrate Company entity: %w", classifyStoreError("create companies", err))
	}

	if err := c.DB.AutoMigrate(&models.Vacancy{}); err != nil {
		return fmt.Errorf("failed to migrate Vacancy entity: %w", classifyStoreError("create vacancies", err))
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
