package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"netbelge/internal/repository"
)

// Middleware validates bearer tokens and rejects unknown or disabled actors.
type Middleware struct {
	tokens *TokenManager
	actors repository.ActorRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, actors repository.ActorRepository) *Middleware {
	return &Middleware{tokens: tokens, actors: actors}
}

// Handle enforces authentication for protected routes. On success the actor id
// is stored both in Fiber locals and in the user context. Lookup failures other
// than a missing actor are returned as is and end up as 500.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	actor, err := m.actors.FindByID(c.UserContext(), claims.Subject)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fiber.NewError(fiber.StatusUnauthorized, "unknown actor")
	case err != nil:
		return fmt.Errorf("load actor: %w", err)
	case !actor.IsActive:
		return fiber.NewError(fiber.StatusUnauthorized, "unknown actor")
	}

	c.Locals(ActorLocalKey, actor.ID)
	c.SetUserContext(WithActor(c.UserContext(), actor.ID))
	return c.Next()
}
