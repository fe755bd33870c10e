package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"decisionsampler/internal/models"
)

// SampleStore reads sample counts.
type SampleStore interface {
	CountSamples(ctx context.Context) ([]models.SampleCount, error)
}

// SampleHandler exposes sample counts via JSON API.
type SampleHandler struct {
	db SampleStore
}

// NewSampleHandler creates a new API sample handler.
func NewSampleHandler(database SampleStore) *SampleHandler {
	return &SampleHandler{db: database}
}

// Counts returns sample counts grouped by destination, project and category.
func (h *SampleHandler) Counts(c fiber.Ctx) error {
	counts, err := h.db.CountSamples(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to count samples")
	}
	return jsonList(c, counts)
}
