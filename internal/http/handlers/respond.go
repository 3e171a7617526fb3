package handlers

import (
	"errors"
	"fmt"

	applog "buycycle/internal/log"
	"buycycle/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fallback. Server errors are logged and
// answered with a generic body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return c.JSON(fiber.Map{"error": "internal server error"})
}

// fail maps service errors onto responses. Anything unrecognised goes to
// ErrorHandler.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.Status(fiber.StatusBadRequest)
		applog.Info(c, action+".invalid", map[string]any{"reason": err.Error()})
		return c.JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.Status(fiber.StatusForbidden)
		applog.Security(c, "access.denied.owner", map[string]any{"action": action})
		return c.SendString("Forbidden")
	}
	return fmt.Errorf("%s: %w", action, err)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
