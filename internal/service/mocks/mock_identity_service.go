package mocks

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockIdentityService struct {
	mock.Mock
}

var _ service.IdentityService = (*MockIdentityService)(nil)

func (m *MockIdentityService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockIdentityService) ResolveCurrent(ctx context.Context, token string) (model.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Principal), args.Error(1)
}
