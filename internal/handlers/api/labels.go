package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"decisionsampler/internal/db"
	"decisionsampler/internal/models"
)

// LabelStore reads issue labels.
type LabelStore interface {
	GetIssueLabel(ctx context.Context, id string) (*models.IssueLabel, error)
}

// LabelHandler exposes issue labels and their classification via JSON API.
type LabelHandler struct {
	db      LabelStore
	modelID string
}

// NewLabelHandler creates a new API label handler.
func NewLabelHandler(database LabelStore, modelID string) *LabelHandler {
	return &LabelHandler{db: database, modelID: modelID}
}

// Get returns a label and how it classifies under the configured model.
func (h *LabelHandler) Get(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" || len(id) > 200 {
		return jsonError(c, fiber.StatusBadRequest, "invalid label id")
	}

	label, err := h.db.GetIssueLabel(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrLabelNotFound) {
			return jsonError(c, fiber.StatusNotFound, "label not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch label")
	}

	resp := models.LabelResponse{Label: *label, ModelID: h.modelID}
	if category, ok := label.Classify(h.modelID); ok {
		resp.Classification = &category
	}
	return jsonSuccess(c, resp)
}
