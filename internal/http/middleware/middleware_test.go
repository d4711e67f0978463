package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: "", keep: false},
		{name: "client id kept", incoming: "test-id-123", keep: true},
		{name: "oversized id replaced", incoming: strings.Repeat("a", 129), keep: false},
		{name: "id with spaces replaced", incoming: "two words", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			header := resp.Header.Get(RequestIDHeader)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, header, string(body))

			if tt.keep {
				assert.Equal(t, tt.incoming, header)
				return
			}
			_, err = uuid.Parse(header)
			assert.NoError(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	// Verify log output
	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestLogger_ErrorStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	app.Use(RequestID())
	app.Use(Logger(zap.New(core)))

	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "nope")
	})
	app.Post("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("POST", "/boom", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)

	// fields of an earlier entry survive later requests reusing fiber's buffers
	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "/missing", first["path"])
	assert.Equal(t, int64(fiber.StatusNotFound), first["status"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, int64(fiber.StatusInternalServerError), entries[1].ContextMap()["status"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}
