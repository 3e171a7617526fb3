package handlers

import (
	"errors"
	"strings"

	"buycycle/internal/log"
	"buycycle/internal/services"
	"buycycle/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog  *services.CatalogService
	Resolver *services.Resolver
}

// POST /products?email=
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.Catalog.CreateProduct(c.UserContext(), principal(c), in)
	if err != nil {
		return fail(c, "products.create", err)
	}
	log.Audit(c, "products.create", map[string]any{"product": res.InsertedID, "category": in.CategoryID})
	return c.JSON(res)
}

// GET /products?email=
func (h *ProductHandler) Mine(c *fiber.Ctx) error {
	rows, err := h.Resolver.SellerProducts(c.UserContext(), principal(c))
	if err != nil {
		return fail(c, "products.mine", err)
	}
	return c.JSON(rows)
}

// GET /products/:id lists the products in category :id.
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.JSON([]services.ProductWithSeller{})
	}
	rows, err := h.Resolver.ProductsByCategory(c.UserContext(), id)
	if err != nil {
		return fail(c, "products.category", err)
	}
	return c.JSON(rows)
}

// DELETE /products?email=&id=
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	res, err := h.Catalog.DeleteProduct(c.UserContext(), principal(c), id)
	if err != nil {
		return fail(c, "products.delete", err)
	}
	fields := map[string]any{
		"product":  id,
		"bookings": res.BookingsDeleted,
		"adverts":  res.AdvertisementsDeleted,
	}
	if len(res.CascadeErrors) > 0 {
		log.Error(c, "products.delete.cascade", errors.New("failed: "+strings.Join(res.CascadeErrors, ",")), fields)
	}
	log.Audit(c, "products.delete", fields)
	return c.JSON(res)
}
