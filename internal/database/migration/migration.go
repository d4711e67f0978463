package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_actors",
		SQL: `CREATE TABLE IF NOT EXISTS actors (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username      TEXT        NOT NULL UNIQUE,
  full_name     TEXT        NOT NULL DEFAULT '',
  password_hash TEXT        NOT NULL,
  is_active     BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_departments",
		SQL: `CREATE TABLE IF NOT EXISTS departments (
  id          UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  name        VARCHAR(100) NOT NULL,
  parent_id   UUID         REFERENCES departments (id) ON DELETE CASCADE,
  path        VARCHAR(63)  NOT NULL,
  description TEXT         NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
  created_by  UUID         NOT NULL REFERENCES actors (id),
  updated_by  UUID         NOT NULL REFERENCES actors (id)
);`,
	},
	{
		Name: "create_index_departments_name_parent",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_departments_name_parent
  ON departments (name, COALESCE(parent_id, '00000000-0000-0000-0000-000000000000'::uuid));`,
	},
	{
		Name: "create_index_departments_parent",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_departments_parent_id ON departments (parent_id);`,
	},
	{
		Name: "create_table_document_types",
		SQL: `CREATE TABLE IF NOT EXISTS document_types (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  department_id UUID        NOT NULL REFERENCES departments (id) ON DELETE CASCADE,
  name          VARCHAR(50) NOT NULL,
  path          VARCHAR(63) NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_by    UUID        NOT NULL REFERENCES actors (id),
  updated_by    UUID        NOT NULL REFERENCES actors (id),
  UNIQUE (department_id, name)
);`,
	},
	{
		Name: "create_table_document_sections",
		SQL: `CREATE TABLE IF NOT EXISTS document_sections (
  id               UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_type_id UUID         NOT NULL REFERENCES document_types (id) ON DELETE CASCADE,
  name             VARCHAR(100) NOT NULL,
  description      TEXT         NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
  created_by       UUID         NOT NULL REFERENCES actors (id),
  updated_by       UUID         NOT NULL REFERENCES actors (id),
  UNIQUE (document_type_id, name)
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id               UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  department_id    UUID         NOT NULL REFERENCES departments (id) ON DELETE CASCADE,
  document_type_id UUID         NOT NULL REFERENCES document_types (id) ON DELETE CASCADE,
  title            VARCHAR(100) NOT NULL,
  date             DATE         NOT NULL,
  time             TIME,
  document_no      VARCHAR(100) NOT NULL,
  description      TEXT         NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
  created_by       UUID         NOT NULL REFERENCES actors (id),
  updated_by       UUID         NOT NULL REFERENCES actors (id),
  UNIQUE (department_id, document_type_id, document_no)
);`,
	},
	{
		Name: "create_index_documents_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_date ON documents (date);`,
	},
	{
		Name: "create_table_document_files",
		SQL: `CREATE TABLE IF NOT EXISTS document_files (
  id           UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id  UUID          NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  filename     TEXT          NOT NULL,
  storage_path VARCHAR(1000) NOT NULL UNIQUE,
  size         BIGINT        NOT NULL CHECK (size >= 0),
  content_type TEXT          NOT NULL,
  content      TEXT          NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ   NOT NULL DEFAULT now(),
  created_by   UUID          NOT NULL REFERENCES actors (id),
  updated_by   UUID          NOT NULL REFERENCES actors (id)
);`,
	},
	{
		Name: "create_index_document_files_document",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_files_document_id ON document_files (document_id);`,
	},
}

// EnsureMigrated applies every step not yet recorded in schema_migrations. Each
// step runs in its own transaction together with its bookkeeping row.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	start := time.Now()
	logger = logger.With(zap.String("component", "database"))
	logger.Info("db_migration_check", zap.String("status", "starting"))

	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		logger.Error("db_migration_failed", zap.String("status", "error"), zap.Error(err))
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		logger.Error("db_migration_failed", zap.String("status", "error"), zap.Error(err))
		return err
	}

	ran := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		stepStart := time.Now()
		if err := applyStep(ctx, db, step); err != nil {
			logger.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		ran++
		logger.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	if ran == 0 {
		logger.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema up to date"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	logger.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int("steps_applied", ran),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("read schema_migrations: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func applyStep(ctx context.Context, db *sql.DB, step migrationStep) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, step.Name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
