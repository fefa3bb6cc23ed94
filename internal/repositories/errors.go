package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"strings"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgClassConnection     = "08"
)

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation || pgErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "constraint failed")
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgClassConnection)
	}

	return strings.Contains(err.Error(), "database is closed")
}

// classifyStoreError tags a driver error with the domain error kind it represents.
func classifyStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var storeErr *models.StoreError
	if errors.As(err, &storeErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case isConstraintViolation(err):
		return models.NewStoreError(models.ErrConstraintViolation, op, err)
	case isConnectionFailure(err):
		return models.NewStoreError(models.ErrConnection, op, err)
	default:
		return errors.Wrap(err, op)
	}
}
