package repository

import (
	"context"

	"docshare/internal/model"
)

// UserRepository is data access for user accounts.
type UserRepository interface {
	// Create inserts u and returns the stored row. Duplicate usernames or
	// emails fail with a *UniqueViolationError.
	Create(ctx context.Context, q Querier, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, q Querier, id string) (*model.User, error)
	FindByUsername(ctx context.Context, q Querier, username string) (*model.User, error)
}
