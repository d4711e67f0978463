package auth

import "context"

// ActorLocalKey is the Fiber locals key holding the authenticated actor id.
const ActorLocalKey = "actor_id"

type actorKey struct{}

// WithActor returns a copy of ctx carrying actorID.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorID returns the actor stored by WithActor.
func ActorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actorKey{}).(string)
	return id, ok && id != ""
}
