package postgres

import (
	"context"
	"database/sql"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

const documentSectionColumns = `id, document_type_id, name, description, created_at, updated_at, created_by, updated_by`

// DocumentSectionPostgres is a PostgreSQL implementation of repository.DocumentSectionRepository.
type DocumentSectionPostgres struct {
	db *sql.DB
}

func NewDocumentSectionPostgres(db *sql.DB) *DocumentSectionPostgres {
	return &DocumentSectionPostgres{db: db}
}

var _ repository.DocumentSectionRepository = (*DocumentSectionPostgres)(nil)

func scanDocumentSection(s scanner) (model.DocumentSection, error) {
	var sec model.DocumentSection
	err := s.Scan(
		&sec.ID,
		&sec.DocumentTypeID,
		&sec.Name,
		&sec.Description,
		&sec.CreatedAt,
		&sec.UpdatedAt,
		&sec.CreatedBy,
		&sec.UpdatedBy,
	)
	return sec, err
}

func (r *DocumentSectionPostgres) Create(ctx context.Context, s *model.DocumentSection) (*model.DocumentSection, error) {
	const q = `
		INSERT INTO document_sections (id, document_type_id, name, description, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentSectionColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID, s.DocumentTypeID, s.Name, s.Description, s.CreatedAt, s.UpdatedAt, s.CreatedBy, s.UpdatedBy)
	out, err := scanDocumentSection(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (r *DocumentSectionPostgres) Update(ctx context.Context, s *model.DocumentSection) error {
	const q = `
		UPDATE document_sections
		SET name = $2, description = $3, updated_at = $4, updated_by = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.Description, s.UpdatedAt, s.UpdatedBy)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *DocumentSectionPostgres) FindByID(ctx context.Context, id string) (*model.DocumentSection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentSectionColumns+` FROM document_sections WHERE id = $1`, id)
	s, err := scanDocumentSection(row)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DocumentSectionPostgres) ListByDocumentType(ctx context.Context, documentTypeID string) ([]model.DocumentSection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentSectionColumns+` FROM document_sections WHERE document_type_id = $1 ORDER BY name, id`,
		documentTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentSection, 0)
	for rows.Next() {
		s, err := scanDocumentSection(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *DocumentSectionPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM document_sections WHERE id = $1`, id)
	return err
}
