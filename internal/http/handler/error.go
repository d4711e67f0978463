package handler

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"netbelge/internal/http/middleware"
	"netbelge/internal/service"
	"netbelge/internal/storagepath"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestError is a client mistake detected in the handler itself, such as a
// malformed id or query parameter.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}

var pathErrorCodes = map[storagepath.Kind]string{
	storagepath.KindInvalidPlaceholder: "INVALID_PLACEHOLDER",
	storagepath.KindTooLong:            "PATH_TOO_LONG",
	storagepath.KindTooShort:           "PATH_TOO_SHORT",
	storagepath.KindInvalidEdge:        "INVALID_PATH_EDGE",
	storagepath.KindInvalidCharacter:   "INVALID_PATH_CHARACTER",
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// fail maps a handler or service error onto the error envelope. Errors it does
// not recognize are returned unchanged so the global ErrorHandler answers with
// INTERNAL_ERROR and the request logger records the cause.
func fail(c *fiber.Ctx, err error) error {
	var (
		reqErr   *requestError
		pathErr  *storagepath.ValidationError
		tagErrs  validator.ValidationErrors
		ruleErrs validation.Errors
	)

	switch {
	case errors.As(err, &reqErr):
		return writeError(c, fiber.StatusBadRequest, reqErr.code, reqErr.message)
	case errors.As(err, &pathErr):
		code, ok := pathErrorCodes[pathErr.Kind]
		if !ok {
			code = "INVALID_PATH"
		}
		return writeError(c, fiber.StatusBadRequest, code, err.Error())
	case errors.As(err, &tagErrs):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", describe(tagErrs))
	case errors.As(err, &ruleErrs), errors.Is(err, service.ErrInvalidTime):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, service.ErrCycle):
		return writeError(c, fiber.StatusBadRequest, "DEPARTMENT_CYCLE", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, service.ErrActorRequired):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	}
	return err
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "max":
			parts = append(parts, fe.Field()+" must be at most "+fe.Param()+" characters")
		case "uuid4":
			parts = append(parts, fe.Field()+" must be a UUID")
		case "datetime":
			parts = append(parts, fe.Field()+" must match "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" failed on "+fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := ""
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "TOO_MANY_REQUESTS", "too many requests")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
