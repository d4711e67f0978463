package postgres

import (
	"context"
	"database/sql"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

const documentTypeColumns = `id, department_id, name, path, description, created_at, updated_at, created_by, updated_by`

// DocumentTypePostgres is a PostgreSQL implementation of repository.DocumentTypeRepository.
type DocumentTypePostgres struct {
	db *sql.DB
}

// NewDocumentTypePostgres creates a new DocumentTypePostgres repository.
func NewDocumentTypePostgres(db *sql.DB) *DocumentTypePostgres {
	return &DocumentTypePostgres{db: db}
}

var _ repository.DocumentTypeRepository = (*DocumentTypePostgres)(nil)

func scanDocumentType(s scanner) (model.DocumentType, error) {
	var t model.DocumentType
	err := s.Scan(
		&t.ID,
		&t.DepartmentID,
		&t.Name,
		&t.Path,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CreatedBy,
		&t.UpdatedBy,
	)
	return t, err
}

func (r *DocumentTypePostgres) Create(ctx context.Context, t *model.DocumentType) (*model.DocumentType, error) {
	const q = `
		INSERT INTO document_types (id, department_id, name, path, description, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + documentTypeColumns
	row := r.db.QueryRowContext(ctx, q,
		t.ID,
		t.DepartmentID,
		t.Name,
		t.Path,
		t.Description,
		t.CreatedAt,
		t.UpdatedAt,
		t.CreatedBy,
		t.UpdatedBy,
	)
	out, err := scanDocumentType(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (r *DocumentTypePostgres) Update(ctx context.Context, t *model.DocumentType) error {
	const q = `
		UPDATE document_types
		SET department_id = $2, name = $3, path = $4, description = $5, updated_at = $6, updated_by = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, t.ID, t.DepartmentID, t.Name, t.Path, t.Description, t.UpdatedAt, t.UpdatedBy)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *DocumentTypePostgres) FindByID(ctx context.Context, id string) (*model.DocumentType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentTypeColumns+` FROM document_types WHERE id = $1`, id)
	t, err := scanDocumentType(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *DocumentTypePostgres) List(ctx context.Context, f repository.DocumentTypeFilter, pq repository.PageQuery) (*repository.PageResult[model.DocumentType], error) {
	var w where
	if f.DepartmentID != "" {
		w.add("department_id = $%d", f.DepartmentID)
	}
	if f.Search != "" {
		w.add("name ILIKE '%%' || $%d || '%%'", f.Search)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_types`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(pq)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentTypeColumns+` FROM document_types`+w.String()+` ORDER BY name, id`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentType, 0)
	for rows.Next() {
		t, err := scanDocumentType(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.DocumentType]{Items: items, Total: total}, nil
}

// Delete removes a document type; its sections and documents cascade.
func (r *DocumentTypePostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM document_types WHERE id = $1`, id)
	return err
}
