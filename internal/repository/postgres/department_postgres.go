package postgres

import (
	"context"
	"database/sql"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

// maxDepth stops the ancestor walk on corrupted parent links.
const maxDepth = 64

const departmentColumns = `id, name, parent_id, path, description, created_at, updated_at, created_by, updated_by`

// DepartmentPostgres is a PostgreSQL implementation of repository.DepartmentRepository.
type DepartmentPostgres struct {
	db *sql.DB
}

// NewDepartmentPostgres creates a new DepartmentPostgres repository.
func NewDepartmentPostgres(db *sql.DB) *DepartmentPostgres {
	return &DepartmentPostgres{db: db}
}

var _ repository.DepartmentRepository = (*DepartmentPostgres)(nil)

func scanDepartment(s scanner) (model.Department, error) {
	var (
		d        model.Department
		parentID sql.NullString
	)
	err := s.Scan(
		&d.ID,
		&d.Name,
		&parentID,
		&d.Path,
		&d.Description,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CreatedBy,
		&d.UpdatedBy,
	)
	d.ParentID = stringPtr(parentID)
	return d, err
}

// Create inserts a department row and returns the stored record.
func (r *DepartmentPostgres) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	const q = `
		INSERT INTO departments (id, name, parent_id, path, description, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + departmentColumns
	row := r.db.QueryRowContext(ctx, q,
		d.ID,
		d.Name,
		d.ParentID,
		d.Path,
		d.Description,
		d.CreatedAt,
		d.UpdatedAt,
		d.CreatedBy,
		d.UpdatedBy,
	)
	out, err := scanDepartment(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// Update writes the mutable columns of a department.
func (r *DepartmentPostgres) Update(ctx context.Context, d *model.Department) error {
	const q = `
		UPDATE departments
		SET name = $2, parent_id = $3, path = $4, description = $5, updated_at = $6, updated_by = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, d.ID, d.Name, d.ParentID, d.Path, d.Description, d.UpdatedAt, d.UpdatedBy)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// FindByID loads the department and all of its ancestors in one recursive
// query, then links the Parent pointers.
func (r *DepartmentPostgres) FindByID(ctx context.Context, id string) (*model.Department, error) {
	const q = `
		WITH RECURSIVE chain AS (
			SELECT ` + departmentColumns + `, 0 AS depth
			FROM departments
			WHERE id = $1
			UNION ALL
			SELECT p.id, p.name, p.parent_id, p.path, p.description, p.created_at, p.updated_at, p.created_by, p.updated_by, c.depth + 1
			FROM departments p
			JOIN chain c ON p.id = c.parent_id
			WHERE c.depth < $2
		)
		SELECT ` + departmentColumns + `
		FROM chain
		ORDER BY depth
	`
	rows, err := r.db.QueryContext(ctx, q, id, maxDepth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chain := make([]model.Department, 0, 4)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		chain = append(chain, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, sql.ErrNoRows
	}

	for i := 0; i < len(chain)-1; i++ {
		chain[i].Parent = &chain[i+1]
	}
	return &chain[0], nil
}

// List returns departments using LIMIT/OFFSET pagination and a total count.
func (r *DepartmentPostgres) List(ctx context.Context, f repository.DepartmentFilter, pq repository.PageQuery) (*repository.PageResult[model.Department], error) {
	var w where
	switch {
	case f.RootsOnly:
		w.raw("parent_id IS NULL")
	case f.ParentID != nil:
		w.add("parent_id = $%d", *f.ParentID)
	}
	if f.Search != "" {
		w.add("name ILIKE '%%' || $%d || '%%'", f.Search)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM departments`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(pq)
	q := `SELECT ` + departmentColumns + ` FROM departments` + w.String() + ` ORDER BY name, id` + limit
	items, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Department]{Items: items, Total: total}, nil
}

// All returns every department ordered by name.
func (r *DepartmentPostgres) All(ctx context.Context) ([]model.Department, error) {
	return r.query(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY name, id`)
}

func (r *DepartmentPostgres) query(ctx context.Context, q string, args ...any) ([]model.Department, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Delete removes a department by ID. Missing rows are not an error.
func (r *DepartmentPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	return err
}
