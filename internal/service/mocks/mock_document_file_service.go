package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"netbelge/internal/model"
	"netbelge/internal/service"
)

type MockDocumentFileService struct {
	mock.Mock
}

func (m *MockDocumentFileService) Upload(ctx context.Context, r io.Reader, in service.FileUpload) (*model.DocumentFile, error) {
	args := m.Called(ctx, r, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentFile), args.Error(1)
}

func (m *MockDocumentFileService) List(ctx context.Context, documentID string) ([]model.DocumentFile, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentFile), args.Error(1)
}

func (m *MockDocumentFileService) Get(ctx context.Context, id string) (*model.DocumentFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentFile), args.Error(1)
}

func (m *MockDocumentFileService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentFileService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.DocumentFileService = (*MockDocumentFileService)(nil)
