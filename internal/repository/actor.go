package repository

import (
	"context"

	"netbelge/internal/model"
)

// ActorRepository persists the users that manage the registry.
type ActorRepository interface {
	Create(ctx context.Context, a *model.Actor) (*model.Actor, error)
	FindByUsername(ctx context.Context, username string) (*model.Actor, error)
	FindByID(ctx context.Context, id string) (*model.Actor, error)
}
