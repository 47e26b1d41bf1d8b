// Package postgres implements the repository interfaces on PostgreSQL through
// database/sql and the pgx driver.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"docshare/internal/repository"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// mapError converts driver errors the services care about into repository errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &repository.UniqueViolationError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}
