// Package repository holds the gorm and redis backed data access for the
// catalog. Every repository translates driver errors into the sentinels below
// so handlers can map them onto HTTP statuses without knowing the driver.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id, slug or name matches no row.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write violates a unique constraint, such as
// two movies sharing one url slug.
var ErrConflict = errors.New("conflict")

const pgUniqueViolation = "23505"

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrConflict
	}
	return err
}
