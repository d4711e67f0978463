package handler

import (
	"github.com/gofiber/fiber/v2"

	"netbelge/internal/storagepath"
)

type normalizeRequest struct {
	Label string `json:"label" validate:"max=1000"`
}

type validatePathRequest struct {
	Value   string `json:"value" validate:"max=1000"`
	Literal bool   `json:"literal"`
}

// NormalizePath turns a free-form label into a path segment.
//
//	@Summary	Normalize a label
//	@Tags		paths
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		normalizeRequest	true	"label"
//	@Success	200		{object}	map[string]string
//	@Router		/api/paths/normalize [post]
func NormalizePath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req normalizeRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"path": storagepath.Normalize(req.Label)})
	}
}

// ValidatePath checks a path template, or a literal value when literal is set,
// and returns it with every placeholder replaced by its stand-in.
//
//	@Summary	Validate a path
//	@Tags		paths
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		validatePathRequest	true	"value"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	errorPayload
//	@Router		/api/paths/validate [post]
func ValidatePath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req validatePathRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}

		check := storagepath.ValidateTemplate
		if req.Literal {
			check = storagepath.ValidateLiteral
		}
		substituted, err := check(req.Value)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"substituted": substituted})
	}
}
