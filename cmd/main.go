package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fundterm/fundterm/api"
	"github.com/fundterm/fundterm/config"
	"github.com/fundterm/fundterm/internal/collector"
	"github.com/fundterm/fundterm/internal/engine"
	"github.com/fundterm/fundterm/internal/scheduler"
	"github.com/fundterm/fundterm/internal/venue"
)

func main() {
	// ── 1. Logger setup
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// ── 2. Root context setup
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 3. Config
	cfg := config.Load()
	log.Info().Msg("config loaded")

	// ── 4. Venue adapters (registry order defines per-row column order)
	venues := []venue.Venue{
		venue.NewBinanceAdapter(cfg.FetchTimeout),
		venue.NewBybitAdapter(cfg.FetchTimeout),
		venue.NewHyperliquidAdapter(cfg.FetchTimeout),
		venue.NewLighterAdapter(cfg.FetchTimeout),
		venue.NewVariationalAdapter(cfg.FetchTimeout),
	}
	log.Info().Int("count", len(venues)).Msg("venue adapters initialized")

	// ── 5. Collector + Engine + Scheduler
	coll := collector.New(venues, cfg.FetchTimeout)
	eng := engine.New(coll.Names(), cfg.SpotPriority)
	sched := scheduler.New(coll, eng, cfg.RefreshInterval)

	sched.Start(ctx)
	defer sched.Stop()

	// ── 6. Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Fundterm",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// ── 7. Routes
	api.SetupRoutes(app, sched)

	// ── 8. Graceful shutdown listener
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
	}()

	// ── 9. Start server (blocking)
	log.Info().Str("port", cfg.AppPort).Msg("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
