package routes

import (
	"github.com/olehks/content_studio/middleware"
	"github.com/olehks/content_studio/websocket"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/ws/dashboard",
		websocket.UpgradeRequired,
		middleware.Protected(),
		middleware.AdminRequired(),
		websocket.ServeDashboard())
}
