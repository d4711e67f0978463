package postgres

import (
	"context"
	"database/sql"

	"netbelge/internal/model"
	"netbelge/internal/repository"
)

const actorColumns = `id, username, full_name, password_hash, is_active, created_at`

// ActorPostgres is a PostgreSQL implementation of repository.ActorRepository.
type ActorPostgres struct {
	db *sql.DB
}

func NewActorPostgres(db *sql.DB) *ActorPostgres {
	return &ActorPostgres{db: db}
}

var _ repository.ActorRepository = (*ActorPostgres)(nil)

func scanActor(s scanner) (*model.Actor, error) {
	var a model.Actor
	if err := s.Scan(&a.ID, &a.Username, &a.FullName, &a.PasswordHash, &a.IsActive, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActorPostgres) Create(ctx context.Context, a *model.Actor) (*model.Actor, error) {
	const q = `
		INSERT INTO actors (id, username, full_name, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + actorColumns
	out, err := scanActor(r.db.QueryRowContext(ctx, q,
		a.ID, a.Username, a.FullName, a.PasswordHash, a.IsActive, a.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *ActorPostgres) FindByUsername(ctx context.Context, username string) (*model.Actor, error) {
	return scanActor(r.db.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM actors WHERE username = $1`, username))
}

func (r *ActorPostgres) FindByID(ctx context.Context, id string) (*model.Actor, error) {
	return scanActor(r.db.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM actors WHERE id = $1`, id))
}
