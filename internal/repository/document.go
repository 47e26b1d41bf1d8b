package repository

import (
	"context"

	"docshare/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// Misses are reported as sql.ErrNoRows.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	// A storage key clash fails with a *UniqueViolationError.
	Create(ctx context.Context, q Querier, doc *model.Document) (*model.Document, error)

	FindByID(ctx context.Context, q Querier, id string) (*model.Document, error)
	FindByStorageKey(ctx context.Context, q Querier, key string) (*model.Document, error)

	// ListByOwner returns every document of ownerID, oldest first.
	ListByOwner(ctx context.Context, q Querier, ownerID string) ([]model.Document, error)

	// ListPublic returns every public document with its owner, oldest first.
	ListPublic(ctx context.Context, q Querier) ([]model.PublicDocument, error)

	StorageKeyExists(ctx context.Context, q Querier, key string) (bool, error)
}
