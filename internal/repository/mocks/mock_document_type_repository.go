package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

type MockDocumentTypeRepository struct {
	mock.Mock
}

func (m *MockDocumentTypeRepository) Create(ctx context.Context, t *model.DocumentType) (*model.DocumentType, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepository) Update(ctx context.Context, t *model.DocumentType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockDocumentTypeRepository) FindByID(ctx context.Context, id string) (*model.DocumentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepository) List(ctx context.Context, f repository.DocumentTypeFilter, pq repository.PageQuery) (*repository.PageResult[model.DocumentType], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.DocumentType]), args.Error(1)
}

func (m *MockDocumentTypeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.DocumentTypeRepository = (*MockDocumentTypeRepository)(nil)
