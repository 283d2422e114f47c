package routes

import (
	"github.com/olehks/content_studio/handlers"
	"github.com/olehks/content_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	streamers := admin.Group("/streamers")
	streamers.Post("", handlers.CreateStreamer)
	streamers.Get("", handlers.ListStreamers)

	voiceActors := admin.Group("/voice-actors")
	voiceActors.Post("", handlers.CreateVoiceActor)
	voiceActors.Get("", handlers.ListVoiceActors)

	teamMembers := admin.Group("/team-members")
	teamMembers.Post("", handlers.CreateTeamMember)
	teamMembers.Get("", handlers.ListTeamMembers)

	creators := admin.Group("/content-creators")
	creators.Post("", handlers.CreateContentCreator)
	creators.Get("", handlers.ListContentCreators)

	admin.Put("/payees/:kind/:payeeId/deactivate", handlers.DeactivatePayee)

	streams := admin.Group("/streams")
	streams.Post("", handlers.CreateStream)
	streams.Get("", handlers.ListStreams)

	admin.Get("/debts/:kind/:payeeId", handlers.GetDebtSummary)
	admin.Get("/debts", handlers.GetPortfolioSummary)
	admin.Post("/debts/:kind/:payeeId/allocate", handlers.AllocatePayment)

	admin.Get("/payment-requests", handlers.AdminListPaymentRequests)
	admin.Post("/payment-requests/:requestId/transition", handlers.TransitionPaymentRequest)

	ledger := admin.Group("/ledger")
	ledger.Get("", handlers.ListLedger)
	ledger.Post("", handlers.RecordManualEntry)

	reports := admin.Group("/reports")
	reports.Get("/ledger.csv", handlers.ExportLedgerCSV)
	reports.Get("/ledger.xlsx", handlers.ExportLedgerXLSX)
}
