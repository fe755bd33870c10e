package api

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"decisionsampler/internal/db"
	"decisionsampler/internal/models"
	"decisionsampler/internal/validation"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

// RunStore reads sample run history.
type RunStore interface {
	ListSampleRuns(ctx context.Context, project string, limit int) ([]models.SampleRun, error)
	GetSampleRun(ctx context.Context, id uuid.UUID) (*models.SampleRun, error)
}

// RunHandler exposes sample run history via JSON API.
type RunHandler struct {
	db RunStore
}

// NewRunHandler creates a new API run handler.
func NewRunHandler(database RunStore) *RunHandler {
	return &RunHandler{db: database}
}

// List returns recent runs, newest first.
func (h *RunHandler) List(c fiber.Ctx) error {
	project := strings.ToUpper(strings.TrimSpace(c.Query("project")))
	if project != "" && !validation.ValidateKeyPrefix(project) {
		return jsonError(c, fiber.StatusBadRequest, "invalid project")
	}

	limit := defaultRunLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return jsonError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = min(n, maxRunLimit)
	}

	runs, err := h.db.ListSampleRuns(c.Context(), project, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list runs")
	}
	return jsonList(c, runs)
}

// Get returns a single run.
func (h *RunHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid run id")
	}

	run, err := h.db.GetSampleRun(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRunNotFound) {
			return jsonError(c, fiber.StatusNotFound, "run not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch run")
	}
	return jsonSuccess(c, run)
}
