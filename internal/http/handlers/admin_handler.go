package handlers

import (
	applog "buycycle/internal/log"
	"buycycle/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Users *services.UserService
}

// GET /admin/users?role=
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.AdminList(c.UserContext(), c.Query("role"))
	if err != nil {
		return fail(c, "admin.users.list", err)
	}
	return c.JSON(users)
}

// DeleteUser removes the user record. Their products, bookings and wishlist
// entries stay.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "missing id")
	}
	res, err := h.Users.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "admin.users.delete", err)
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id, "deleted": res.DeletedCount})
	return c.JSON(res)
}
