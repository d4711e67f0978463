package main

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbelge/docs"
)

func TestRegisterDocs(t *testing.T) {
	app := fiber.New()
	registerDocs(app, "registry.example.org")

	var wg sync.WaitGroup
	for _, host := range []string{"a.example.org", "b.example.org", "c.example.org", "d.example.org"} {
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
			req.Host = host
			resp, err := app.Test(req)
			if assert.NoError(t, err) {
				assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			}
		}(host)
	}
	wg.Wait()

	assert.Equal(t, "registry.example.org", docs.SwaggerInfo.Host)

	resp, err := app.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var doc struct {
		Host string `json:"host"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "registry.example.org", doc.Host)
}
