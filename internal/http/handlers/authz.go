package handlers

import (
	"buycycle/internal/auth"
	applog "buycycle/internal/log"

	"github.com/gofiber/fiber/v2"
)

// Guard runs the gate chain for class against the Authorization header and
// the email query parameter. The verified email is put in locals on success.
func Guard(policy *auth.Policy, class auth.Class) fiber.Handler {
	chain := policy.Chain(class)
	return func(c *fiber.Ctx) error {
		req := &auth.Request{
			Authorization: c.Get(fiber.HeaderAuthorization),
			Email:         c.Query("email"),
		}
		err := chain.Run(c.UserContext(), req)
		switch auth.Status(err) {
		case fiber.StatusOK:
			c.Locals(applog.PrincipalKey, req.Principal)
			return c.Next()
		case fiber.StatusUnauthorized:
			c.Status(fiber.StatusUnauthorized)
			applog.Security(c, "access.denied.unauthenticated", map[string]any{"class": class.String(), "email": req.Email, "reason": err.Error()})
			return c.SendString("Unauthorized access")
		case fiber.StatusForbidden:
			c.Status(fiber.StatusForbidden)
			applog.Security(c, "access.denied.role", map[string]any{"class": class.String(), "email": req.Email, "reason": err.Error()})
			return c.SendString("Forbidden")
		}
		return err
	}
}

// principal is the email Guard verified for this request.
func principal(c *fiber.Ctx) string {
	p, _ := c.Locals(applog.PrincipalKey).(string)
	return p
}
