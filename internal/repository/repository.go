// Package repository declares the persistence contracts used by the services.
// Implementations contain SQL only; decisions about who may see what live in
// the service layer.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Querier is the subset of *sql.DB and *sql.Tx that repositories need.
// Every repository method takes one so callers decide the transaction boundary.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Transactor runs work either directly against the pool or inside a transaction.
type Transactor interface {
	Querier
	// WithinTx runs fn in a transaction. It commits when fn returns nil and
	// rolls back otherwise.
	WithinTx(ctx context.Context, fn func(q Querier) error) error
}

// Unique constraint names created by the schema migration.
const (
	ConstraintUsersUsername       = "users_username_key"
	ConstraintUsersEmail          = "users_email_key"
	ConstraintDocumentsStorageKey = "documents_storage_key_key"
	ConstraintFavoritesPair       = "favorites_user_document_key"
)

// ErrUniqueViolation matches any *UniqueViolationError with errors.Is.
var ErrUniqueViolation = errors.New("unique constraint violation")

// UniqueViolationError reports which unique constraint rejected a write.
type UniqueViolationError struct {
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUniqueViolation, e.Constraint)
}

func (e *UniqueViolationError) Is(target error) bool { return target == ErrUniqueViolation }

func (e *UniqueViolationError) Unwrap() error { return e.Err }

// IsUniqueViolationOn reports whether err is a unique violation of constraint.
func IsUniqueViolationOn(err error, constraint string) bool {
	var uv *UniqueViolationError
	return errors.As(err, &uv) && uv.Constraint == constraint
}
