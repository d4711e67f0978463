package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

type MockDocumentSectionRepository struct {
	mock.Mock
}

func (m *MockDocumentSectionRepository) Create(ctx context.Context, s *model.DocumentSection) (*model.DocumentSection, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentSection), args.Error(1)
}

func (m *MockDocumentSectionRepository) Update(ctx context.Context, s *model.DocumentSection) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDocumentSectionRepository) FindByID(ctx context.Context, id string) (*model.DocumentSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentSection), args.Error(1)
}

func (m *MockDocumentSectionRepository) ListByDocumentType(ctx context.Context, documentTypeID string) ([]model.DocumentSection, error) {
	args := m.Called(ctx, documentTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentSection), args.Error(1)
}

func (m *MockDocumentSectionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.DocumentSectionRepository = (*MockDocumentSectionRepository)(nil)
