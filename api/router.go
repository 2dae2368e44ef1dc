package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/fundterm/fundterm/api/handlers"
	"github.com/fundterm/fundterm/internal/scheduler"
)

func SetupRoutes(app *fiber.App, sched *scheduler.Scheduler) {
	fundingHandler := handlers.NewFundingHandler(sched)

	app.Get("/healthz", fundingHandler.Health)

	v1 := app.Group("/v1")

	v1.Get("/funding", fundingHandler.ListFunding)
	v1.Get("/basis", fundingHandler.ListBasis)
	v1.Get("/funding/:symbol", fundingHandler.GetSymbol)
}
