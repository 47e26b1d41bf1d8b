package mocks

import (
	"context"
	"io"
	"time"

	"docshare/internal/model"
	"docshare/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

var _ service.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) Upload(ctx context.Context, p model.Principal, in service.UploadInput) (*model.Document, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) ListOwned(ctx context.Context, p model.Principal, ownerID string) ([]model.Document, error) {
	args := m.Called(ctx, p, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) ListPublic(ctx context.Context, p model.Principal) ([]model.PublicDocument, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublicDocument), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, p model.Principal, id string) (*model.Document, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, p model.Principal, key string) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, p, key)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Document), args.Error(2)
}

func (m *MockDocumentService) PresignDownload(ctx context.Context, p model.Principal, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, p, key, expiry)
	return args.String(0), args.Error(1)
}
