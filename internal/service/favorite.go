package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// FavoriteService tracks which documents each user has favorited.
// Both transitions are idempotent: favoriting twice or unfavoriting
// an absent pair succeeds without changing anything.
type FavoriteService interface {
	Favorite(ctx context.Context, p model.Principal, documentID string) error
	Unfavorite(ctx context.Context, p model.Principal, documentID string) error
	// ListFavorites returns p's favorited documents in the order they were favorited.
	ListFavorites(ctx context.Context, p model.Principal) ([]model.Document, error)
	IsFavorite(ctx context.Context, p model.Principal, documentID string) (bool, error)
}

type favoriteService struct {
	tx   repository.Transactor
	docs repository.DocumentRepository
	favs repository.FavoriteRepository
}

func NewFavoriteService(tx repository.Transactor, docs repository.DocumentRepository, favs repository.FavoriteRepository) FavoriteService {
	return &favoriteService{tx: tx, docs: docs, favs: favs}
}

// Favorite checks the document and records the pair in one transaction.
func (s *favoriteService) Favorite(ctx context.Context, p model.Principal, documentID string) (err error) {
	ctx, span := tracer.Start(ctx, "FavoriteService.Favorite")
	span.SetAttributes(attribute.String("document.id", documentID))
	defer func() { endSpan(span, err) }()

	if p.IsAnonymous() {
		return ErrUnauthorized
	}
	if documentID == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return ErrDocumentNotFound
	}

	return s.tx.WithinTx(ctx, func(q repository.Querier) error {
		doc, err := s.docs.FindByID(ctx, q, documentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDocumentNotFound
			}
			return fmt.Errorf("load document: %w", err)
		}
		if !doc.VisibleTo(p) {
			return ErrDocumentNotFound
		}
		created, err := s.favs.Add(ctx, q, p.UserID, documentID)
		if err != nil {
			return fmt.Errorf("add favorite: %w", err)
		}
		span.SetAttributes(attribute.Bool("favorite.created", created))
		return nil
	})
}

func (s *favoriteService) Unfavorite(ctx context.Context, p model.Principal, documentID string) (err error) {
	ctx, span := tracer.Start(ctx, "FavoriteService.Unfavorite")
	defer func() { endSpan(span, err) }()

	if p.IsAnonymous() {
		return ErrUnauthorized
	}
	if documentID == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(documentID); err != nil {
		// No pair can reference an id that is not a uuid.
		return nil
	}
	if err := s.favs.Remove(ctx, s.tx, p.UserID, documentID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, p model.Principal) (_ []model.Document, err error) {
	ctx, span := tracer.Start(ctx, "FavoriteService.ListFavorites")
	defer func() { endSpan(span, err) }()

	if p.IsAnonymous() {
		return nil, ErrUnauthorized
	}
	return s.favs.ListDocuments(ctx, s.tx, p.UserID)
}

func (s *favoriteService) IsFavorite(ctx context.Context, p model.Principal, documentID string) (bool, error) {
	if p.IsAnonymous() {
		return false, nil
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return false, nil
	}
	return s.favs.Exists(ctx, s.tx, p.UserID, documentID)
}
