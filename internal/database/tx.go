package database

import (
	"context"
	"database/sql"
	"fmt"

	"docshare/internal/repository"
)

// Transactor runs repository work against a pool. Outside WithinTx it is the
// pool itself; inside, fn receives the *sql.Tx.
type Transactor struct {
	*sql.DB
}

func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{DB: db}
}

var _ repository.Transactor = (*Transactor)(nil)

func (t *Transactor) WithinTx(ctx context.Context, fn func(q repository.Querier) error) error {
	tx, err := t.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w; rollback failed: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
