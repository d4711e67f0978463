package postgres

import (
	"context"
	"database/sql"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

// time is read back as text so it round-trips in model.TimeLayout.
const documentColumns = `id, department_id, document_type_id, title, date, time::text, document_no, description, created_at, updated_at, created_by, updated_by`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(s scanner) (model.Document, error) {
	var (
		d     model.Document
		clock sql.NullString
	)
	err := s.Scan(
		&d.ID,
		&d.DepartmentID,
		&d.DocumentTypeID,
		&d.Title,
		&d.Date,
		&clock,
		&d.DocumentNo,
		&d.Description,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CreatedBy,
		&d.UpdatedBy,
	)
	d.Time = stringPtr(clock)
	return d, err
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, department_id, document_type_id, title, date, time, document_no, description,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.DepartmentID,
		doc.DocumentTypeID,
		doc.Title,
		doc.Date,
		doc.Time,
		doc.DocumentNo,
		doc.Description,
		doc.CreatedAt,
		doc.UpdatedAt,
		doc.CreatedBy,
		doc.UpdatedBy,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// Update writes the editable fields of a document.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) error {
	const q = `
		UPDATE documents
		SET department_id = $2, document_type_id = $3, title = $4, date = $5, time = $6,
			document_no = $7, description = $8, updated_at = $9, updated_by = $10
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.DepartmentID,
		doc.DocumentTypeID,
		doc.Title,
		doc.Date,
		doc.Time,
		doc.DocumentNo,
		doc.Description,
		doc.UpdatedAt,
		doc.UpdatedBy,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	d, err := scanDocument(row)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	var w where
	if f.DepartmentID != "" {
		w.add("department_id = $%d", f.DepartmentID)
	}
	if f.DocumentTypeID != "" {
		w.add("document_type_id = $%d", f.DocumentTypeID)
	}
	if f.Search != "" {
		w.add("(title ILIKE '%%' || $%[1]d || '%%' OR document_no ILIKE '%%' || $%[1]d || '%%')", f.Search)
	}
	if f.DateFrom != nil {
		w.add("date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("date <= $%d", *f.DateTo)
	}

	// Count total rows
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	limit, args := w.page(pq)
	q := `SELECT ` + documentColumns + ` FROM documents` + w.String() + ` ORDER BY date DESC, created_at DESC, id DESC` + limit
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}
