package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"netbelge/internal/model"
	"netbelge/internal/service"
	serviceMocks "netbelge/internal/service/mocks"
)

func TestNormalizePath(t *testing.T) {
	app := newTestApp()
	app.Post("/api/paths/normalize", NormalizePath())

	tests := []struct {
		label string
		want  string
	}{
		{label: "Üsküdar İdare", want: "uskudar-idare"},
		{label: "", want: "birim"},
	}
	for _, tt := range tests {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/paths/normalize", map[string]string{"label": tt.label}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, tt.want, body["path"])
	}
}

func TestValidatePath(t *testing.T) {
	app := newTestApp()
	app.Post("/api/paths/validate", ValidatePath())

	tests := []struct {
		name    string
		value   string
		literal bool
		status  int
		code    string
		want    string
	}{
		{name: "template", value: "{yil}/{ay}/{belge_no}", status: http.StatusOK, want: "yil/ay/belge-no"},
		{name: "unknown placeholder", value: "{foo}", status: http.StatusBadRequest, code: "INVALID_PLACEHOLDER"},
		{name: "leading dash", value: "-abc", status: http.StatusBadRequest, code: "INVALID_PATH_EDGE"},
		{name: "too short", value: "ab", status: http.StatusBadRequest, code: "PATH_TOO_SHORT"},
		{name: "uppercase", value: "ABC", status: http.StatusBadRequest, code: "INVALID_PATH_CHARACTER"},
		{name: "literal keeps braces", value: "{yil}", literal: true, status: http.StatusBadRequest, code: "INVALID_PATH_CHARACTER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/paths/validate", map[string]any{
				"value":   tt.value,
				"literal": tt.literal,
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, resp).Error.Code)
				return
			}
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body["substituted"])
		})
	}
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := newTestApp()
	app.Post("/auth/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &service.LoginResult{
			Token:     "signed.jwt.token",
			ExpiresAt: time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
			Actor:     &model.Actor{ID: "a1", Username: "ayse"},
		}
		mockSvc.On("Login", mock.Anything, "ayse", "correct horse").Return(res, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", map[string]string{"username": "ayse", "password": "correct horse"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "signed.jwt.token", body["token"])
		assert.NotContains(t, body["actor"], "password_hash")
	})

	t.Run("wrong password", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "ayse", "nope").Return(nil, service.ErrInvalidCredentials).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", map[string]string{"username": "ayse", "password": "nope"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp).Error.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", map[string]string{"username": "ayse"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}
