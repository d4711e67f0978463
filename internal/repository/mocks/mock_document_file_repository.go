package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

type MockDocumentFileRepository struct {
	mock.Mock
}

func (m *MockDocumentFileRepository) Create(ctx context.Context, f *model.DocumentFile) (*model.DocumentFile, error) {
	args := m.Called(ctx, f)
	if fn, ok := args.Get(0).(func(*model.DocumentFile) *model.DocumentFile); ok {
		return fn(f), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentFile), args.Error(1)
}

func (m *MockDocumentFileRepository) FindByID(ctx context.Context, id string) (*model.DocumentFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentFile), args.Error(1)
}

func (m *MockDocumentFileRepository) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentFile, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentFile), args.Error(1)
}

func (m *MockDocumentFileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentFileRepository) StoragePathExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentFileRepository) StoragePaths(ctx context.Context, scope repository.FileScope) ([]string, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ repository.DocumentFileRepository = (*MockDocumentFileRepository)(nil)
