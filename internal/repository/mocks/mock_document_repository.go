package mocks

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

var _ repository.DocumentRepository = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) Create(ctx context.Context, q repository.Querier, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, q, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, q repository.Querier, id string) (*model.Document, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByStorageKey(ctx context.Context, q repository.Querier, key string) (*model.Document, error) {
	args := m.Called(ctx, q, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByOwner(ctx context.Context, q repository.Querier, ownerID string) ([]model.Document, error) {
	args := m.Called(ctx, q, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListPublic(ctx context.Context, q repository.Querier) ([]model.PublicDocument, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublicDocument), args.Error(1)
}

func (m *MockDocumentRepository) StorageKeyExists(ctx context.Context, q repository.Querier, key string) (bool, error) {
	args := m.Called(ctx, q, key)
	return args.Bool(0), args.Error(1)
}
