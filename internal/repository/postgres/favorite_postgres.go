package postgres

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// FavoritePostgres is a PostgreSQL implementation of repository.FavoriteRepository.
// Pair uniqueness is enforced by the favorites_user_document_key constraint.
type FavoritePostgres struct{}

func NewFavoritePostgres() *FavoritePostgres {
	return &FavoritePostgres{}
}

var _ repository.FavoriteRepository = (*FavoritePostgres)(nil)

func (r *FavoritePostgres) Add(ctx context.Context, q repository.Querier, userID, documentID string) (bool, error) {
	const query = `
		INSERT INTO favorites (user_id, document_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, document_id) DO NOTHING
	`
	res, err := q.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *FavoritePostgres) Remove(ctx context.Context, q repository.Querier, userID, documentID string) error {
	const query = `DELETE FROM favorites WHERE user_id = $1 AND document_id = $2`
	_, err := q.ExecContext(ctx, query, userID, documentID)
	return err
}

func (r *FavoritePostgres) Exists(ctx context.Context, q repository.Querier, userID, documentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND document_id = $2)`
	var exists bool
	if err := q.QueryRowContext(ctx, query, userID, documentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListDocuments joins through to documents; favorites whose document is gone drop out.
func (r *FavoritePostgres) ListDocuments(ctx context.Context, q repository.Querier, userID string) ([]model.Document, error) {
	const query = `
		SELECT ` + qualifiedDocumentColumns + `
		FROM favorites f
		JOIN documents d ON d.id = f.document_id
		WHERE f.user_id = $1
		ORDER BY f.created_at ASC, f.id ASC
	`
	return queryDocuments(ctx, q, query, userID)
}
