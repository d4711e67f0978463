package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

var documentTypeRowColumns = []string{"id", "department_id", "name", "path", "description", "created_at", "updated_at", "created_by", "updated_by"}

func TestDocumentTypePostgres_CreateAndFind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentTypePostgres(db)
	now := time.Now()
	dt := &model.DocumentType{ID: "type-1", DepartmentID: "dep-1", Name: "Gelen Evrak", Path: "{yil}/{ay}"}
	dt.Stamp("u", now)

	mock.ExpectQuery("INSERT INTO document_types").
		WithArgs("type-1", "dep-1", "Gelen Evrak", "{yil}/{ay}", "", now, now, "u", "u").
		WillReturnRows(sqlmock.NewRows(documentTypeRowColumns).
			AddRow("type-1", "dep-1", "Gelen Evrak", "{yil}/{ay}", "", now, now, "u", "u"))
	out, err := repo.Create(context.Background(), dt)
	require.NoError(t, err)
	assert.Equal(t, "{yil}/{ay}", out.Path)

	mock.ExpectQuery("INSERT INTO document_types").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "document_types_department_id_fkey"})
	_, err = repo.Create(context.Background(), dt)
	assert.ErrorIs(t, err, repository.ErrForeignKey)

	mock.ExpectQuery("SELECT (.+) FROM document_types WHERE id = ?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentTypePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentTypePostgres(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM document_types WHERE department_id = \$1`).
		WithArgs("dep-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM document_types WHERE department_id = \$1 ORDER BY name, id LIMIT \$2 OFFSET \$3`).
		WithArgs("dep-1", 5, 0).
		WillReturnRows(sqlmock.NewRows(documentTypeRowColumns).
			AddRow("type-1", "dep-1", "Gelen Evrak", "gelen", "", now, now, "u", "u"))

	res, err := repo.List(context.Background(),
		repository.DocumentTypeFilter{DepartmentID: "dep-1"},
		repository.PageQuery{Limit: 5})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "Gelen Evrak", res.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentTypePostgres_UpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentTypePostgres(db)

	mock.ExpectExec("UPDATE document_types").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), &model.DocumentType{ID: "x"}), sql.ErrNoRows)

	mock.ExpectExec("DELETE FROM document_types WHERE id = ?").
		WithArgs("x").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, repo.Delete(context.Background(), "x"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentSectionPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentSectionPostgres(db)
	ctx := context.Background()
	now := time.Now()
	cols := []string{"id", "document_type_id", "name", "description", "created_at", "updated_at", "created_by", "updated_by"}

	mock.ExpectQuery("INSERT INTO document_sections").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("s1", "type-1", "Ekler", "", now, now, "u", "u"))
	s, err := repo.Create(ctx, &model.DocumentSection{ID: "s1", DocumentTypeID: "type-1", Name: "Ekler"})
	require.NoError(t, err)
	assert.Equal(t, "Ekler", s.Name)

	mock.ExpectQuery(`SELECT (.+) FROM document_sections WHERE document_type_id = \$1 ORDER BY name, id`).
		WithArgs("type-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("s1", "type-1", "Ekler", "", now, now, "u", "u").
			AddRow("s2", "type-1", "Özet", "", now, now, "u", "u"))
	list, err := repo.ListByDocumentType(ctx, "type-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	mock.ExpectExec("UPDATE document_sections").
		WithArgs("s1", "Ekler", "güncel", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Update(ctx, &model.DocumentSection{ID: "s1", Name: "Ekler", Description: "güncel"}))

	mock.ExpectExec("DELETE FROM document_sections WHERE id = ?").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "s1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActorPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActorPostgres(db)
	ctx := context.Background()
	now := time.Now()
	cols := []string{"id", "username", "full_name", "password_hash", "is_active", "created_at"}

	mock.ExpectQuery("SELECT (.+) FROM actors WHERE username = ?").
		WithArgs("ayse").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("a1", "ayse", "Ayşe Yılmaz", "$2a$10$hash", true, now))
	a, err := repo.FindByUsername(ctx, "ayse")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.True(t, a.IsActive)

	mock.ExpectQuery("INSERT INTO actors").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "actors_username_key"})
	_, err = repo.Create(ctx, &model.Actor{ID: "a2", Username: "ayse"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	mock.ExpectQuery("SELECT (.+) FROM actors WHERE id = ?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
