package handlers

import (
	applog "buycycle/internal/log"
	"buycycle/internal/services"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Bookings *services.BookingService
	Resolver *services.Resolver
}

// POST /bookings?email=
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in services.BookingInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.Bookings.Book(c.UserContext(), principal(c), in)
	if err != nil {
		return fail(c, "bookings.create", err)
	}
	if res.Acknowledged {
		applog.Audit(c, "bookings.create", map[string]any{"product": in.ProductID, "booking": res.InsertedID})
	} else {
		applog.Info(c, "bookings.duplicate", map[string]any{"product": in.ProductID})
	}
	return c.JSON(res)
}

// GET /bookings?email=
func (h *BookingHandler) Mine(c *fiber.Ctx) error {
	rows, err := h.Resolver.BuyerBookings(c.UserContext(), principal(c))
	if err != nil {
		return fail(c, "bookings.mine", err)
	}
	return c.JSON(rows)
}

// GET /bookings/seller?email=
func (h *BookingHandler) Seller(c *fiber.Ctx) error {
	rows, err := h.Resolver.SellerBookings(c.UserContext(), principal(c))
	if err != nil {
		return fail(c, "bookings.seller", err)
	}
	return c.JSON(rows)
}
