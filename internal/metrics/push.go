package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"decisionsampler/internal/models"
)

// PushJobName is the Pushgateway job label used for sample runs.
const PushJobName = "decisionsampler"

// RunGauges holds per-project gauges describing the latest sample run.
type RunGauges struct {
	registry   *prometheus.Registry
	selected   *prometheus.GaugeVec
	limit      *prometheus.GaugeVec
	candidates *prometheus.GaugeVec
	unlabeled  *prometheus.GaugeVec
	dropped    *prometheus.GaugeVec
}

// NewRunGauges creates the gauges on a fresh registry.
func NewRunGauges() *RunGauges {
	g := &RunGauges{
		registry: prometheus.NewRegistry(),
		selected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "decisionsampler_run_selected",
			Help: "Issues written by the latest run, by project and category",
		}, []string{"project", "category"}),
		limit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "decisionsampler_run_limit",
			Help: "Configured cap of the latest run, by project and category",
		}, []string{"project", "category"}),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "decisionsampler_run_candidates",
			Help: "Candidates drawn by the latest run, by project",
		}, []string{"project"}),
		unlabeled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "decisionsampler_run_unlabeled",
			Help: "Candidates skipped for lack of a label, by project",
		}, []string{"project"}),
		dropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "decisionsampler_run_dropped",
			Help: "Classified candidates dropped because their category was full, by project",
		}, []string{"project"}),
	}
	g.registry.MustRegister(g.selected, g.limit, g.candidates, g.unlabeled, g.dropped)
	return g
}

// Observe records a finished run.
func (g *RunGauges) Observe(run models.SampleRun) {
	arch := models.CategoryArchitectural.String()
	nonArch := models.CategoryNonArchitectural.String()

	g.selected.WithLabelValues(run.Project, arch).Set(float64(run.Architectural))
	g.selected.WithLabelValues(run.Project, nonArch).Set(float64(run.NonArchitectural))
	g.limit.WithLabelValues(run.Project, arch).Set(float64(run.ArchitecturalLimit))
	g.limit.WithLabelValues(run.Project, nonArch).Set(float64(run.NonArchitecturalLimit))
	g.candidates.WithLabelValues(run.Project).Set(float64(run.Candidates))
	g.unlabeled.WithLabelValues(run.Project).Set(float64(run.Unlabeled))
	g.dropped.WithLabelValues(run.Project).Set(float64(run.Dropped))
}

// Registry exposes the underlying registry.
func (g *RunGauges) Registry() *prometheus.Registry {
	return g.registry
}

// Push sends the gauges to a Pushgateway, replacing the job's previous metrics.
func (g *RunGauges) Push(ctx context.Context, url string) error {
	err := push.New(url, PushJobName).
		Gatherer(g.registry).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push run metrics: %w", err)
	}
	return nil
}
