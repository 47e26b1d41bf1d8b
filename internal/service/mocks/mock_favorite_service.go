package mocks

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockFavoriteService struct {
	mock.Mock
}

var _ service.FavoriteService = (*MockFavoriteService)(nil)

func (m *MockFavoriteService) Favorite(ctx context.Context, p model.Principal, documentID string) error {
	return m.Called(ctx, p, documentID).Error(0)
}

func (m *MockFavoriteService) Unfavorite(ctx context.Context, p model.Principal, documentID string) error {
	return m.Called(ctx, p, documentID).Error(0)
}

func (m *MockFavoriteService) ListFavorites(ctx context.Context, p model.Principal) ([]model.Document, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, p model.Principal, documentID string) (bool, error) {
	args := m.Called(ctx, p, documentID)
	return args.Bool(0), args.Error(1)
}
