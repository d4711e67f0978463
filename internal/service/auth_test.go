package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"netbelge/internal/auth"
	"netbelge/internal/model"
	"netbelge/internal/repository"
	repoMocks "netbelge/internal/repository/mocks"
)

func TestAuthService_Login(t *testing.T) {
	hashed, err := auth.HashPassword("parola123", 4)
	require.NoError(t, err)
	tokens := auth.NewTokenManager("secret", 5)

	actors := new(repoMocks.MockActorRepository)
	actors.On("FindByUsername", mock.Anything, "ayse").Return(&model.Actor{ID: "a1", Username: "ayse", PasswordHash: hashed, IsActive: true}, nil)
	actors.On("FindByUsername", mock.Anything, "ali").Return(&model.Actor{ID: "a2", Username: "ali", PasswordHash: hashed, IsActive: false}, nil)
	actors.On("FindByUsername", mock.Anything, "kimse").Return(nil, sql.ErrNoRows)
	actors.On("FindByUsername", mock.Anything, "db").Return(nil, errors.New("connection reset"))

	svc := NewAuthService(actors, tokens, 4)

	res, err := svc.Login(context.Background(), "ayse", "parola123")
	require.NoError(t, err)
	claims, err := tokens.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.Subject)
	assert.Equal(t, "ayse", res.Actor.Username)

	_, err = svc.Login(context.Background(), "ayse", "yanlis")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ali", "parola123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "kimse", "parola123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "db", "parola123")
	assert.EqualError(t, err, "connection reset")
}

func TestAuthService_CreateActor(t *testing.T) {
	actors := new(repoMocks.MockActorRepository)
	svc := NewAuthService(actors, auth.NewTokenManager("secret", 5), 4)

	actors.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Actor) bool {
		return a.Username == "ayse" && a.IsActive && auth.CheckPassword(a.PasswordHash, "parola123") == nil
	})).Return(&model.Actor{ID: "a1", Username: "ayse", IsActive: true}, nil).Once()

	a, err := svc.CreateActor(context.Background(), ActorInput{Username: "ayse", Password: "parola123", FullName: "Ayşe Yılmaz"})
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)

	actors.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrConflict).Once()
	_, err = svc.CreateActor(context.Background(), ActorInput{Username: "ayse", Password: "parola123"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateActor(context.Background(), ActorInput{Username: "ay", Password: "kisa"})
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "Username")
	assert.Contains(t, verrs, "Password")

	actors.AssertExpectations(t)
}
