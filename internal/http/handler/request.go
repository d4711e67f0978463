package handler

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bind decodes the JSON body into dst and checks its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return badRequest("INVALID_BODY", "invalid request body")
	}
	return validate.Struct(dst)
}

// paramID reads and checks the :id route parameter.
func paramID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", badRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}

// optionalID reads a query parameter that must be a UUID when present.
func optionalID(c *fiber.Ctx, key string) (string, error) {
	v := c.Query(key)
	if v == "" {
		return "", nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return "", badRequest("INVALID_"+strings.ToUpper(key), "invalid "+key)
	}
	return v, nil
}

func pageParams(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, badRequest("INVALID_LIMIT", "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, badRequest("INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}

func optionalDate(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, badRequest("INVALID_"+strings.ToUpper(key), key+" must be YYYY-MM-DD")
	}
	return &t, nil
}

// listResponse mirrors service.ListResult for response types built in this package.
type listResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
