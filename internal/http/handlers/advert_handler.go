package handlers

import (
	applog "buycycle/internal/log"
	"buycycle/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdvertHandler struct {
	Adverts  *services.AdvertService
	Resolver *services.Resolver
}

type advertiseRequest struct {
	ProductID string `json:"productId"`
}

// POST /advertise?email=
func (h *AdvertHandler) Create(c *fiber.Ctx) error {
	var in advertiseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.Adverts.Advertise(c.UserContext(), principal(c), in.ProductID)
	if err != nil {
		return fail(c, "advertise.create", err)
	}
	if res.Acknowledged {
		applog.Audit(c, "advertise.create", map[string]any{"product": in.ProductID})
	}
	return c.JSON(res)
}

// GET /advertise
func (h *AdvertHandler) List(c *fiber.Ctx) error {
	ads, err := h.Resolver.Advertisements(c.UserContext())
	if err != nil {
		return fail(c, "advertise.list", err)
	}
	return c.JSON(ads)
}

// DELETE /advertise?email=&id=
func (h *AdvertHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	res, err := h.Adverts.Remove(c.UserContext(), principal(c), id)
	if err != nil {
		return fail(c, "advertise.delete", err)
	}
	applog.Audit(c, "advertise.delete", map[string]any{"product": id, "deleted": res.DeletedCount})
	return c.JSON(res)
}
