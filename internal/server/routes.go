package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"decisionsampler/internal/config"
	"decisionsampler/internal/db"
	"decisionsampler/internal/handlers/api"
	"decisionsampler/internal/metrics"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, projects []config.ProjectConfig) {
	metrics.Init(database)

	healthHandler := api.NewHealthHandler(database)
	projectHandler := api.NewProjectHandler(database, s.Cfg, projects)
	runHandler := api.NewRunHandler(database)
	sampleHandler := api.NewSampleHandler(database)
	labelHandler := api.NewLabelHandler(database, s.Cfg.ModelID)
	issueHandler := api.NewIssueHandler(database, s.Cfg.SourceCollection)

	s.App.Get("/health", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := s.App.Group("/api")
	apiGroup.Get("/projects", projectHandler.List)
	apiGroup.Get("/runs", runHandler.List)
	apiGroup.Get("/runs/:id", runHandler.Get)
	apiGroup.Get("/samples", sampleHandler.Counts)
	apiGroup.Get("/labels/:id", labelHandler.Get)
	apiGroup.Get("/issues/:id", issueHandler.Get)
}
