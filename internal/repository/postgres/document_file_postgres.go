package postgres

import (
	"context"
	"database/sql"
	"errors"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

const documentFileColumns = `id, document_id, filename, storage_path, size, content_type, content, created_at, updated_at, created_by, updated_by`

const (
	storagePathsByDocument = `SELECT storage_path FROM document_files WHERE document_id = $1`

	storagePathsByDocumentType = `
		SELECT f.storage_path
		FROM document_files f
		JOIN documents d ON d.id = f.document_id
		WHERE d.document_type_id = $1
	`

	// A document is inside the subtree when either its department or the
	// department of its type is.
	storagePathsByDepartment = `
		WITH RECURSIVE subtree AS (
			SELECT id FROM departments WHERE id = $1
			UNION
			SELECT c.id FROM departments c JOIN subtree s ON c.parent_id = s.id
		)
		SELECT f.storage_path
		FROM document_files f
		JOIN documents d ON d.id = f.document_id
		JOIN document_types t ON t.id = d.document_type_id
		WHERE d.department_id IN (SELECT id FROM subtree)
		   OR t.department_id IN (SELECT id FROM subtree)
	`
)

// DocumentFilePostgres is a PostgreSQL implementation of repository.DocumentFileRepository.
type DocumentFilePostgres struct {
	db *sql.DB
}

// NewDocumentFilePostgres creates a new DocumentFilePostgres repository.
func NewDocumentFilePostgres(db *sql.DB) *DocumentFilePostgres {
	return &DocumentFilePostgres{db: db}
}

var _ repository.DocumentFileRepository = (*DocumentFilePostgres)(nil)

func scanDocumentFile(s scanner) (model.DocumentFile, error) {
	var f model.DocumentFile
	err := s.Scan(
		&f.ID,
		&f.DocumentID,
		&f.Filename,
		&f.StoragePath,
		&f.Size,
		&f.ContentType,
		&f.Content,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.CreatedBy,
		&f.UpdatedBy,
	)
	return f, err
}

// Create inserts a file row and returns the stored record.
func (r *DocumentFilePostgres) Create(ctx context.Context, f *model.DocumentFile) (*model.DocumentFile, error) {
	const q = `
		INSERT INTO document_files (id, document_id, filename, storage_path, size, content_type, content,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + documentFileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.DocumentID,
		f.Filename,
		f.StoragePath,
		f.Size,
		f.ContentType,
		f.Content,
		f.CreatedAt,
		f.UpdatedAt,
		f.CreatedBy,
		f.UpdatedBy,
	)
	out, err := scanDocumentFile(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// FindByID fetches a single file by its ID.
func (r *DocumentFilePostgres) FindByID(ctx context.Context, id string) (*model.DocumentFile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentFileColumns+` FROM document_files WHERE id = $1`, id)
	f, err := scanDocumentFile(row)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByDocument returns the files of a document, oldest first.
func (r *DocumentFilePostgres) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentFile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentFileColumns+` FROM document_files WHERE document_id = $1 ORDER BY created_at, id`,
		documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentFile, 0)
	for rows.Next() {
		f, err := scanDocumentFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// Delete removes a file row by ID. It does not return an error if the row does not exist.
func (r *DocumentFilePostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM document_files WHERE id = $1`, id)
	return err
}

func (r *DocumentFilePostgres) StoragePathExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM document_files WHERE storage_path = $1)`, key).Scan(&exists)
	return exists, err
}

// StoragePaths lists object keys of the files inside scope.
func (r *DocumentFilePostgres) StoragePaths(ctx context.Context, scope repository.FileScope) ([]string, error) {
	var q, id string
	switch {
	case scope.DocumentID != "":
		q, id = storagePathsByDocument, scope.DocumentID
	case scope.DocumentTypeID != "":
		q, id = storagePathsByDocumentType, scope.DocumentTypeID
	case scope.DepartmentID != "":
		q, id = storagePathsByDepartment, scope.DepartmentID
	default:
		return nil, errors.New("file scope is empty")
	}

	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
