package repository

import (
	"context"
	"time"

	"netbelge/internal/model"
)

// DocumentFilter narrows document listings. Zero values are ignored.
type DocumentFilter struct {
	DepartmentID   string
	DocumentTypeID string
	Search         string
	DateFrom       *time.Time
	DateTo         *time.Time
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, only persistence.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Update writes the editable fields. Returns sql.ErrNoRows when the row does not exist.
	Update(ctx context.Context, doc *model.Document) error

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count for the given filter.
	List(ctx context.Context, f DocumentFilter, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
