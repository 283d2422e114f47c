package routes

import (
	"github.com/olehks/content_studio/handlers"
	"github.com/olehks/content_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func WorkItemRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	items := api.Group("/work-items", middleware.Protected())
	items.Get("", handlers.ListWorkItems)

	scripts := items.Group("/scripts")
	scripts.Post("", handlers.CreateScript)
	scripts.Post("/:scriptId/voice", handlers.AttachVoiceLink)
	scripts.Post("/:scriptId/approve", handlers.ApproveScriptAsCreator)
	scripts.Post("/:scriptId/reject", handlers.RejectScript)

	adminScripts := items.Group("/scripts", middleware.AdminRequired())
	adminScripts.Post("/:scriptId/price-approve", handlers.ApproveScriptWithPrice)
	adminScripts.Post("/:scriptId/pay", handlers.MarkScriptPaid)
	adminScripts.Post("/:scriptId/archive", handlers.ArchiveScript)

	registry := items.Group("/registry")
	registry.Post("", handlers.CreateRegistryEntry)
	registry.Post("/:entryId/status", handlers.AdvanceEntryStatus)

	adminRegistry := items.Group("/registry", middleware.AdminRequired())
	adminRegistry.Post("/:entryId/price", handlers.SetEntryPrice)
	adminRegistry.Post("/:entryId/pay", handlers.MarkEntryLiabilityPaid)
}
