package mocks

import (
	"context"
	"database/sql"

	"docshare/internal/repository"
)

// FakeTransactor satisfies repository.Transactor without a database. WithinTx
// calls fn with the transactor itself and records how the work ended.
// The Querier methods panic; pair it with mocked repositories.
type FakeTransactor struct {
	Begun      int
	Committed  int
	RolledBack int
	BeginErr   error
}

var _ repository.Transactor = (*FakeTransactor)(nil)

func (f *FakeTransactor) WithinTx(ctx context.Context, fn func(q repository.Querier) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}
	f.Begun++
	if err := fn(f); err != nil {
		f.RolledBack++
		return err
	}
	f.Committed++
	return nil
}

func (f *FakeTransactor) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	panic("FakeTransactor: ExecContext called")
}

func (f *FakeTransactor) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	panic("FakeTransactor: QueryContext called")
}

func (f *FakeTransactor) QueryRowContext(context.Context, string, ...any) *sql.Row {
	panic("FakeTransactor: QueryRowContext called")
}
