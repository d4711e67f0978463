// Package service holds the registry use cases. Services validate input, stamp
// audit fields and coordinate the repositories with object storage.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"netbelge/internal/auth"
	"netbelge/internal/repository"
	"netbelge/internal/storage"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrReaderNil          = errors.New("reader is nil")
	ErrCycle              = errors.New("department cannot be moved under itself or one of its descendants")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidTime        = errors.New("time must be HH:MM or HH:MM:SS")
	ErrActorRequired      = errors.New("authenticated actor is required")
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

var tracer = otel.Tracer("netbelge/internal/service")

// ListResult is the service-level DTO for paginated listings.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func actorFrom(ctx context.Context) (string, error) {
	id, ok := auth.ActorID(ctx)
	if !ok {
		return "", ErrActorRequired
	}
	return id, nil
}

// translate maps repository errors onto service errors. what names the entity
// in the resulting message.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s %w", what, ErrNotFound)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%s %w", what, ErrConflict)
	case errors.Is(err, repository.ErrForeignKey):
		return fmt.Errorf("%s references a record that %w", what, ErrNotFound)
	}
	return err
}

// removeObjects deletes stored objects after their rows are gone. Failures
// leave orphaned objects behind and are only logged.
func removeObjects(ctx context.Context, store storage.Storage, logger *zap.Logger, keys []string) {
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			logger.Warn("storage_cleanup_failed", zap.String("storage_path", key), zap.Error(err))
		}
	}
}
