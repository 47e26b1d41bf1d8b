package postgres

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct{}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres() *UserPostgres {
	return &UserPostgres{}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, email, password_hash, is_active, created_at`

func scanUser(s rowScanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Active,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, q repository.Querier, u *model.User) (*model.User, error) {
	const query = `
		INSERT INTO users (id, username, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	row := q.QueryRowContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Active,
		u.CreatedAt,
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *UserPostgres) FindByID(ctx context.Context, q repository.Querier, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.QueryRowContext(ctx, query, id))
}

func (r *UserPostgres) FindByUsername(ctx context.Context, q repository.Querier, username string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(q.QueryRowContext(ctx, query, username))
}
