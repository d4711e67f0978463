package handler

import (
	"github.com/gofiber/fiber/v2"

	"netbelge/internal/service"
)

// Services are the use cases the HTTP API exposes.
type Services struct {
	Auth          service.AuthService
	Departments   service.DepartmentService
	DocumentTypes service.DocumentTypeService
	Documents     service.DocumentService
	Files         service.DocumentFileService
}

// Guards are the middleware placed in front of route groups. Nil guards are skipped.
type Guards struct {
	// RequireAuth protects everything under /api.
	RequireAuth fiber.Handler
	// LoginLimiter throttles POST /auth/login.
	LoginLimiter fiber.Handler
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db Pinger, svc Services, guards Guards) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/login", with(guards.LoginLimiter, Login(svc.Auth))...)

	api := app.Group("/api", with(guards.RequireAuth)...)

	api.Post("/paths/normalize", NormalizePath())
	api.Post("/paths/validate", ValidatePath())

	api.Get("/departments", ListDepartments(svc.Departments))
	api.Post("/departments", CreateDepartment(svc.Departments))
	api.Get("/departments/tree", DepartmentTree(svc.Departments))
	api.Get("/departments/:id", GetDepartment(svc.Departments))
	api.Put("/departments/:id", UpdateDepartment(svc.Departments))
	api.Delete("/departments/:id", DeleteDepartment(svc.Departments))

	api.Get("/document-types", ListDocumentTypes(svc.DocumentTypes))
	api.Post("/document-types", CreateDocumentType(svc.DocumentTypes))
	api.Get("/document-types/:id", GetDocumentType(svc.DocumentTypes))
	api.Put("/document-types/:id", UpdateDocumentType(svc.DocumentTypes))
	api.Delete("/document-types/:id", DeleteDocumentType(svc.DocumentTypes))
	api.Get("/document-types/:id/sections", ListSections(svc.DocumentTypes))
	api.Post("/document-types/:id/sections", AddSection(svc.DocumentTypes))
	api.Put("/document-sections/:id", UpdateSection(svc.DocumentTypes))
	api.Delete("/document-sections/:id", DeleteSection(svc.DocumentTypes))

	api.Get("/documents", ListDocuments(svc.Documents))
	api.Post("/documents", CreateDocument(svc.Documents))
	api.Get("/documents/:id", GetDocument(svc.Documents))
	api.Put("/documents/:id", UpdateDocument(svc.Documents))
	api.Delete("/documents/:id", DeleteDocument(svc.Documents))
	api.Get("/documents/:id/files", ListFiles(svc.Files))
	api.Post("/documents/:id/files", UploadFile(svc.Files))

	api.Get("/document-files/:id", GetFile(svc.Files))
	api.Get("/document-files/:id/download", DownloadFile(svc.Files))
	api.Delete("/document-files/:id", DeleteFile(svc.Files))
}

// with prepends guard to handlers unless it is nil.
func with(guard fiber.Handler, handlers ...fiber.Handler) []fiber.Handler {
	if guard == nil {
		return handlers
	}
	return append([]fiber.Handler{guard}, handlers...)
}
