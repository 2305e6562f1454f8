// Package postgres implements the repository interfaces backed by PostgreSQL.
// All queries are single statements; counter updates are expressed as atomic
// increments so concurrent requests never lose updates.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE code PostgreSQL reports for a
// unique constraint violation.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
// Slug allocation relies on this to retry with the next suffix instead of
// trusting the existence pre-check under concurrent inserts.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
