package handlers

import (
	applog "buycycle/internal/log"
	"buycycle/internal/services"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish     *services.WishlistService
	Resolver *services.Resolver
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Resolver.WishlistDetails(c.UserContext(), principal(c))
	if err != nil {
		return fail(c, "wishlist.list", err)
	}
	return c.JSON(items)
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	pid := c.Query("id")
	res, err := h.Wish.Save(c.UserContext(), principal(c), pid)
	if err != nil {
		return fail(c, "wishlist.save", err)
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	return c.JSON(res)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	pid := c.Query("id")
	res, err := h.Wish.Unsave(c.UserContext(), principal(c), pid)
	if err != nil {
		return fail(c, "wishlist.unsave", err)
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.JSON(res)
}
