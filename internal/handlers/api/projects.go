package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"decisionsampler/internal/config"
	"decisionsampler/internal/models"
)

// IssueCounter counts candidate issues per project.
type IssueCounter interface {
	CountIssues(ctx context.Context, collection, keyPrefix string) (int, error)
}

// ProjectHandler exposes the configured project quotas.
type ProjectHandler struct {
	db       IssueCounter
	cfg      *config.Config
	projects []config.ProjectConfig
}

// NewProjectHandler creates a new API project handler.
func NewProjectHandler(database IssueCounter, cfg *config.Config, projects []config.ProjectConfig) *ProjectHandler {
	return &ProjectHandler{db: database, cfg: cfg, projects: projects}
}

// List returns the configured projects with the number of issues available to each.
func (h *ProjectHandler) List(c fiber.Ctx) error {
	resp := models.ProjectsResponse{
		ModelID:          h.cfg.ModelID,
		Namespace:        h.cfg.Namespace,
		SourceCollection: h.cfg.SourceCollection,
		Strategy:         h.cfg.Strategy,
		OutputMode:       h.cfg.OutputMode,
		Projects:         make([]models.ProjectResponse, 0, len(h.projects)),
	}
	for _, p := range h.projects {
		count, err := h.db.CountIssues(c.Context(), h.cfg.SourceCollection, p.KeyPrefix)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "failed to count issues")
		}
		resp.Projects = append(resp.Projects, models.ProjectResponse{
			KeyPrefix:             p.KeyPrefix,
			ArchitecturalLimit:    p.ArchitecturalLimit,
			NonArchitecturalLimit: p.NonArchitecturalLimit,
			Issues:                count,
		})
	}
	return jsonSuccess(c, resp)
}
