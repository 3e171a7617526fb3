package handlers

import (
	"buycycle/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// Mount registers every route. Gated routes identify the caller with the
// email query parameter, which must match the bearer credential.
func Mount(app *fiber.App, d *Deps) {
	authed := Guard(d.Policy, auth.Authenticated)
	seller := Guard(d.Policy, auth.Seller)
	admin := Guard(d.Policy, auth.Admin)

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("BuyCycle server is running") })
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/jwt-token", d.UserHandler.Token)

	app.Post("/users", d.UserHandler.Register)
	app.Get("/users", d.UserHandler.List)
	app.Get("/categories", d.CategoryHandler.List)

	app.Post("/products", seller, d.ProductHandler.Create)
	app.Get("/products", seller, d.ProductHandler.Mine)
	app.Get("/products/:id", d.ProductHandler.ByCategory)
	app.Delete("/products", seller, d.ProductHandler.Delete)

	app.Post("/advertise", seller, d.AdvertHandler.Create)
	app.Get("/advertise", d.AdvertHandler.List)
	app.Delete("/advertise", seller, d.AdvertHandler.Delete)

	app.Post("/bookings", authed, d.BookingHandler.Create)
	app.Get("/bookings", authed, d.BookingHandler.Mine)
	app.Get("/bookings/seller", seller, d.BookingHandler.Seller)

	app.Get("/wishlist", authed, d.WishlistHandler.List)
	app.Put("/wishlist", authed, d.WishlistHandler.Save)
	app.Delete("/wishlist", authed, d.WishlistHandler.Unsave)

	app.Post("/report", authed, d.ReportHandler.Create)
	app.Get("/report", admin, d.ReportHandler.List)
	app.Delete("/report", admin, d.ReportHandler.Delete)

	adm := app.Group("/admin", admin)
	adm.Get("/users", d.AdminHandler.ListUsers)
	adm.Delete("/users/:id", d.AdminHandler.DeleteUser)
}
