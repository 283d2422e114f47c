package routes

import (
	"github.com/olehks/content_studio/handlers"
	"github.com/olehks/content_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRequestRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	requests := api.Group("/payment-requests", middleware.Protected())
	requests.Post("", handlers.CreatePaymentRequest)
	requests.Get("/me", handlers.ListMyPaymentRequests)
	requests.Delete("/:requestId", handlers.DeletePaymentRequest)
}
