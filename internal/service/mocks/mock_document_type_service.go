package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/service"
)

type MockDocumentTypeService struct {
	mock.Mock
}

func (m *MockDocumentTypeService) Create(ctx context.Context, in service.DocumentTypeInput) (*model.DocumentType, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeService) Update(ctx context.Context, id string, in service.DocumentTypeInput) (*model.DocumentType, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeService) Get(ctx context.Context, id string) (*model.DocumentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeService) List(ctx context.Context, q service.DocumentTypeQuery) (*service.ListResult[model.DocumentType], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.DocumentType]), args.Error(1)
}

func (m *MockDocumentTypeService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentTypeService) AddSection(ctx context.Context, documentTypeID string, in service.SectionInput) (*model.DocumentSection, error) {
	args := m.Called(ctx, documentTypeID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentSection), args.Error(1)
}

func (m *MockDocumentTypeService) UpdateSection(ctx context.Context, id string, in service.SectionInput) (*model.DocumentSection, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentSection), args.Error(1)
}

func (m *MockDocumentTypeService) DeleteSection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentTypeService) ListSections(ctx context.Context, documentTypeID string) ([]model.DocumentSection, error) {
	args := m.Called(ctx, documentTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentSection), args.Error(1)
}

var _ service.DocumentTypeService = (*MockDocumentTypeService)(nil)
