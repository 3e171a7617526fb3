package handlers

import (
	"buycycle/internal/auth"
	applog "buycycle/internal/log"
	"buycycle/internal/services"
	"buycycle/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users  *services.UserService
	Issuer *auth.Issuer
}

// POST /users
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.Users.Register(c.UserContext(), in)
	if err != nil {
		return fail(c, "users.register", err)
	}
	if res.Acknowledged {
		applog.Audit(c, "users.register", map[string]any{"email": in.Email, "role": in.Role})
	}
	return c.JSON(res)
}

// GET /users?email=
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext(), c.Query("email"))
	if err != nil {
		return fail(c, "users.list", err)
	}
	return c.JSON(users)
}

// GET /jwt-token?email=
func (h *UserHandler) Token(c *fiber.Ctx) error {
	email, ok := validate.Email(c.Query("email"))
	if !ok {
		return badRequest(c, "invalid email")
	}
	tok, err := h.Issuer.Mint(email)
	if err != nil {
		return fail(c, "token.mint", err)
	}
	applog.Info(c, "token.issue", map[string]any{"email": email})
	return c.JSON(fiber.Map{"token": tok})
}
