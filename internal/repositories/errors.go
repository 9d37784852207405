package repositories

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateIdentifier is returned when a live account already uses the identifier.
	ErrDuplicateIdentifier = errors.New("identifier already used by a live account")
	// ErrNotFound is returned when a write matched no live account.
	ErrNotFound = errors.New("live account not found")
)

// postgresErrorCode returns the SQLSTATE of err, or "" when err is not a PostgreSQL error.
func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return postgresErrorCode(err) == pgerrcode.UniqueViolation
}
