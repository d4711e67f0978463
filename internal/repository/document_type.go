package repository

import (
	"context"

	"netbelge/internal/model"
)

// DocumentTypeFilter narrows document type listings.
type DocumentTypeFilter struct {
	DepartmentID string
	Search       string
}

// DocumentTypeRepository persists document types.
type DocumentTypeRepository interface {
	Create(ctx context.Context, t *model.DocumentType) (*model.DocumentType, error)
	// Update returns sql.ErrNoRows when the row does not exist.
	Update(ctx context.Context, t *model.DocumentType) error
	// FindByID returns the type without its Department loaded.
	FindByID(ctx context.Context, id string) (*model.DocumentType, error)
	List(ctx context.Context, f DocumentTypeFilter, pq PageQuery) (*PageResult[model.DocumentType], error)
	Delete(ctx context.Context, id string) error
}

// DocumentSectionRepository persists the sections of document types.
type DocumentSectionRepository interface {
	Create(ctx context.Context, s *model.DocumentSection) (*model.DocumentSection, error)
	Update(ctx context.Context, s *model.DocumentSection) error
	FindByID(ctx context.Context, id string) (*model.DocumentSection, error)
	ListByDocumentType(ctx context.Context, documentTypeID string) ([]model.DocumentSection, error)
	Delete(ctx context.Context, id string) error
}
