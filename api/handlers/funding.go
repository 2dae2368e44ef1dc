package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/fundterm/fundterm/internal/engine"
	"github.com/fundterm/fundterm/internal/scheduler"
)

type FundingHandler struct {
	scheduler *scheduler.Scheduler
}

func NewFundingHandler(scheduler *scheduler.Scheduler) *FundingHandler {
	return &FundingHandler{scheduler}
}

// Handles GET /v1/funding. Rows ranked by cross-venue APR gap, optional ?q=
// substring filter on the symbol.
func (h *FundingHandler) ListFunding(c fiber.Ctx) error {
	return h.list(c, engine.ModeFunding)
}

// Handles GET /v1/basis. Rows with positive best funding, ranked by the
// blended daily-return estimate.
func (h *FundingHandler) ListBasis(c fiber.Ctx) error {
	return h.list(c, engine.ModeBasis)
}

func (h *FundingHandler) list(c fiber.Ctx, mode engine.Mode) error {
	rows, updatedAt := h.scheduler.Rows()
	if updatedAt.IsZero() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no refresh cycle has completed yet",
		})
	}

	ranked := engine.Rank(rows, mode, c.Query("q"))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":      ranked,
		"timestamp": updatedAt.UnixMilli(),
	})
}

// Handles GET /v1/funding/:symbol.
func (h *FundingHandler) GetSymbol(c fiber.Ctx) error {
	symbol := strings.ToUpper(c.Params("symbol"))
	if symbol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "symbol parameter is required",
		})
	}

	rows, updatedAt := h.scheduler.Rows()
	if updatedAt.IsZero() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no refresh cycle has completed yet",
		})
	}

	for i := range rows {
		if rows[i].Symbol == symbol {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"data":      rows[i],
				"timestamp": updatedAt.UnixMilli(),
			})
		}
	}

	log.Warn().Str("symbol", symbol).Msg("symbol not found in latest cycle")
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "symbol not reported by any venue",
	})
}

// Handles GET /healthz.
func (h *FundingHandler) Health(c fiber.Ctx) error {
	rows, updatedAt := h.scheduler.Rows()

	status := "ok"
	if updatedAt.IsZero() {
		status = "starting"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":        status,
		"symbols":       len(rows),
		"last_cycle_at": updatedAt.UnixMilli(),
		"cycle_age_ms":  time.Since(updatedAt).Milliseconds(),
	})
}
