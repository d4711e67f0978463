package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbelge/internal/http/middleware"
	"netbelge/internal/service"
	serviceMocks "netbelge/internal/service/mocks"
	"netbelge/internal/storagepath"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func jsonRequestRaw(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"request error", badRequest("INVALID_LIMIT", "invalid limit"), http.StatusBadRequest, "INVALID_LIMIT"},
		{"placeholder", fmt.Errorf("path: %w", &storagepath.ValidationError{Kind: storagepath.KindInvalidPlaceholder, Placeholder: "{foo}"}), http.StatusBadRequest, "INVALID_PLACEHOLDER"},
		{"too long", storagepath.ErrTooLong, http.StatusBadRequest, "PATH_TOO_LONG"},
		{"too short", storagepath.ErrTooShort, http.StatusBadRequest, "PATH_TOO_SHORT"},
		{"edge", fmt.Errorf("document_no: %w", storagepath.ErrInvalidEdge), http.StatusBadRequest, "INVALID_PATH_EDGE"},
		{"charset", storagepath.ErrInvalidCharacter, http.StatusBadRequest, "INVALID_PATH_CHARACTER"},
		{"rules", validation.Errors{"Name": errors.New("cannot be blank")}, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"time", service.ErrInvalidTime, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"cycle", service.ErrCycle, http.StatusBadRequest, "DEPARTMENT_CYCLE"},
		{"not found", fmt.Errorf("department %w", service.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", fmt.Errorf("department %w", service.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"no actor", service.ErrActorRequired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unexpected", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return fail(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "connection reset")
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp()
	app.Use(middleware.RequestID())
	app.Get("/private", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	})
	app.Get("/busy", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTooManyRequests, "slow down")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
	assert.Equal(t, "invalid token", body.Error.Message)
	assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), body.RequestID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/busy", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, resp).Error.Code)
}

func TestRouting(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp()
	denyAll := func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}
	RegisterRoutes(app, db, Services{
		Auth:          new(serviceMocks.MockAuthService),
		Departments:   new(serviceMocks.MockDepartmentService),
		DocumentTypes: new(serviceMocks.MockDocumentTypeService),
		Documents:     new(serviceMocks.MockDocumentService),
		Files:         new(serviceMocks.MockDocumentFileService),
	}, Guards{RequireAuth: denyAll})

	t.Run("not found route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// /health only answers GET
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("api requires auth", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/departments", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("liveness stays public", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
