package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"netbelge/internal/auth"
	"netbelge/internal/model"
	"netbelge/internal/repository"
)

// ActorInput carries the fields needed to create an actor.
type ActorInput struct {
	Username string
	Password string
	FullName string
}

func (in ActorInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 150)),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&in.FullName, validation.Length(0, 150)),
	)
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Actor     *model.Actor `json:"actor"`
}

// AuthService authenticates actors and manages their accounts.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CreateActor(ctx context.Context, in ActorInput) (*model.Actor, error)
}

type authService struct {
	actors     repository.ActorRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(actors repository.ActorRepository, tokens *auth.TokenManager, bcryptCost int) AuthService {
	return &authService{actors: actors, tokens: tokens, bcryptCost: bcryptCost}
}

// Login never tells apart an unknown user, a wrong password and a disabled account.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	actor, err := s.actors.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !actor.IsActive || auth.CheckPassword(actor.PasswordHash, password) != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(actor.ID, actor.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Actor: actor}, nil
}

func (s *authService) CreateActor(ctx context.Context, in ActorInput) (*model.Actor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	hashed, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	stored, err := s.actors.Create(ctx, &model.Actor{
		ID:           uuid.NewString(),
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: hashed,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, translate(err, "actor")
	}
	return stored, nil
}
