package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"netbelge/docs"
)

// registerDocs mounts Swagger UI. The published host is fixed here, before
// the server starts; an empty host makes the UI use the origin it was served from.
func registerDocs(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = nil
	app.Get("/swagger/*", swagger.HandlerDefault)
}
