package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"decisionsampler/internal/db"
	"decisionsampler/internal/models"
)

// IssueStore reads source issues.
type IssueStore interface {
	GetIssue(ctx context.Context, collection, id string) (*models.Issue, error)
}

// IssueHandler exposes issues of the source collection via JSON API.
type IssueHandler struct {
	db         IssueStore
	collection string
}

// NewIssueHandler creates a new API issue handler for one collection.
func NewIssueHandler(database IssueStore, collection string) *IssueHandler {
	return &IssueHandler{db: database, collection: collection}
}

// Get returns a source issue by id, with its stored payload.
func (h *IssueHandler) Get(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" || len(id) > 200 {
		return jsonError(c, fiber.StatusBadRequest, "invalid issue id")
	}

	issue, err := h.db.GetIssue(c.Context(), h.collection, id)
	if err != nil {
		if errors.Is(err, db.ErrIssueNotFound) {
			return jsonError(c, fiber.StatusNotFound, "issue not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch issue")
	}
	return jsonSuccess(c, issue)
}
