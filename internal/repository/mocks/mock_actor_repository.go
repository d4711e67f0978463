package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) Create(ctx context.Context, a *model.Actor) (*model.Actor, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Actor), args.Error(1)
}

func (m *MockActorRepository) FindByUsername(ctx context.Context, username string) (*model.Actor, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Actor), args.Error(1)
}

func (m *MockActorRepository) FindByID(ctx context.Context, id string) (*model.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Actor), args.Error(1)
}

var _ repository.ActorRepository = (*MockActorRepository)(nil)
