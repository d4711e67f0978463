package repository

import (
	"context"

	"netbelge/internal/model"
)

// DepartmentFilter narrows department listings. ParentID and RootsOnly are
// mutually exclusive; RootsOnly wins when both are set.
type DepartmentFilter struct {
	ParentID  *string
	RootsOnly bool
	Search    string
}

// DepartmentRepository persists the department tree.
type DepartmentRepository interface {
	// Create inserts a department and returns the stored row.
	Create(ctx context.Context, d *model.Department) (*model.Department, error)

	// Update writes name, parent, path and description of an existing row.
	// Returns sql.ErrNoRows when the row does not exist.
	Update(ctx context.Context, d *model.Department) error

	// FindByID returns the department with its Parent chain loaded up to the root.
	FindByID(ctx context.Context, id string) (*model.Department, error)

	// List returns one page of departments without parents linked.
	List(ctx context.Context, f DepartmentFilter, pq PageQuery) (*PageResult[model.Department], error)

	// All returns every department, unlinked.
	All(ctx context.Context) ([]model.Department, error)

	// Delete removes a department; children, document types and documents cascade.
	Delete(ctx context.Context, id string) error
}
