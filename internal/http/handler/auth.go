package handler

import (
	"github.com/gofiber/fiber/v2"

	"netbelge/internal/service"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

// Login exchanges credentials for a bearer token.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginRequest	true	"credentials"
//	@Success	200		{object}	service.LoginResult
//	@Failure	401		{object}	errorPayload
//	@Failure	429		{object}	errorPayload
//	@Router		/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		res, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}
