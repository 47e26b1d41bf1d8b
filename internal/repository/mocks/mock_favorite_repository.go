package mocks

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockFavoriteRepository struct {
	mock.Mock
}

var _ repository.FavoriteRepository = (*MockFavoriteRepository)(nil)

func (m *MockFavoriteRepository) Add(ctx context.Context, q repository.Querier, userID, documentID string) (bool, error) {
	args := m.Called(ctx, q, userID, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, q repository.Querier, userID, documentID string) error {
	args := m.Called(ctx, q, userID, documentID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, q repository.Querier, userID, documentID string) (bool, error) {
	args := m.Called(ctx, q, userID, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListDocuments(ctx context.Context, q repository.Querier, userID string) ([]model.Document, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}
