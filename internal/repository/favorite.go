package repository

import (
	"context"

	"docshare/internal/model"
)

// FavoriteRepository is data access for the (user, document) favorite pairs.
type FavoriteRepository interface {
	// Add records the pair. created is false when it already existed.
	Add(ctx context.Context, q Querier, userID, documentID string) (created bool, err error)
	// Remove deletes the pair. Removing an absent pair is not an error.
	Remove(ctx context.Context, q Querier, userID, documentID string) error
	Exists(ctx context.Context, q Querier, userID, documentID string) (bool, error)
	// ListDocuments returns the documents userID favorited, in the order they were favorited.
	ListDocuments(ctx context.Context, q Querier, userID string) ([]model.Document, error)
}
