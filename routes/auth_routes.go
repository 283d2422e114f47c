package routes

import (
	"github.com/olehks/content_studio/handlers"
	"github.com/olehks/content_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/login", handlers.LoginUser)
	api.Post("/auth/register", middleware.Protected(), middleware.AdminRequired(), handlers.RegisterUser)
}
