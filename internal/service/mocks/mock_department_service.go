package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/service"
)

type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) Create(ctx context.Context, in service.DepartmentInput) (*model.Department, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) Update(ctx context.Context, id string, in service.DepartmentInput) (*model.Department, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) Get(ctx context.Context, id string) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) List(ctx context.Context, q service.DepartmentQuery) (*service.ListResult[model.Department], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Department]), args.Error(1)
}

func (m *MockDepartmentService) Tree(ctx context.Context) ([]*model.DepartmentNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DepartmentNode), args.Error(1)
}

func (m *MockDepartmentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.DepartmentService = (*MockDepartmentService)(nil)
