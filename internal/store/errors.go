package store

import (
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

const pgUniqueViolation = "23505"

// Classify turns a driver error into a domain.StoreError. Errors that already
// belong to the taxonomy pass through unchanged.
func Classify(resource, op string, locale domain.Locale, err error) error {
	if err == nil {
		return nil
	}
	if domain.KindOf(err) != domain.KindUnknown {
		return err
	}
	return &domain.StoreError{
		Op:       op,
		Resource: resource,
		Locale:   locale,
		Conflict: IsUniqueViolation(err),
		Err:      err,
	}
}

// IsUniqueViolation reports unique/primary key violations for both drivers,
// raw or already mapped by the repository layer.
func IsUniqueViolation(err error) bool {
	if repository.IsDuplicatedKey(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
