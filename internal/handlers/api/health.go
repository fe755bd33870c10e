package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"decisionsampler/internal/models"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check pings the database.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"data":   models.HealthResponse{Status: "degraded", Database: "unreachable"},
		})
	}
	return jsonSuccess(c, models.HealthResponse{Status: "ok", Database: "ok"})
}
