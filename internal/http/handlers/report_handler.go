package handlers

import (
	applog "buycycle/internal/log"
	"buycycle/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Reports *services.ReportService
}

// POST /report?email=
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	res, err := h.Reports.Create(c.UserContext(), principal(c), c.Body())
	if err != nil {
		return fail(c, "report.create", err)
	}
	applog.Audit(c, "report.create", map[string]any{"report": res.InsertedID})
	return c.JSON(res)
}

// GET /report?email=
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reps, err := h.Reports.List(c.UserContext())
	if err != nil {
		return fail(c, "report.list", err)
	}
	return c.JSON(reps)
}

// DELETE /report?email=&id=
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	res, err := h.Reports.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "report.delete", err)
	}
	applog.Audit(c, "report.delete", map[string]any{"report": id, "deleted": res.DeletedCount})
	return c.JSON(res)
}
