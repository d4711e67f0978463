package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, d *model.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id string) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) List(ctx context.Context, f repository.DepartmentFilter, pq repository.PageQuery) (*repository.PageResult[model.Department], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Department]), args.Error(1)
}

func (m *MockDepartmentRepository) All(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.DepartmentRepository = (*MockDepartmentRepository)(nil)
