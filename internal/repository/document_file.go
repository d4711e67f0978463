package repository

import (
	"context"

	"netbelge/internal/model"
)

// FileScope selects stored files for cleanup. Exactly one field is expected;
// DepartmentID covers the whole subtree below the department.
type FileScope struct {
	DocumentID     string
	DocumentTypeID string
	DepartmentID   string
}

// DocumentFileRepository persists file metadata. The bytes live in object storage.
type DocumentFileRepository interface {
	Create(ctx context.Context, f *model.DocumentFile) (*model.DocumentFile, error)
	FindByID(ctx context.Context, id string) (*model.DocumentFile, error)
	ListByDocument(ctx context.Context, documentID string) ([]model.DocumentFile, error)
	Delete(ctx context.Context, id string) error

	// StoragePathExists reports whether a file row already uses key.
	StoragePathExists(ctx context.Context, key string) (bool, error)

	// StoragePaths returns the object keys of every file inside scope.
	StoragePaths(ctx context.Context, scope FileScope) ([]string, error)
}
