package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"decisionsampler/internal/models"
)

var (
	samplesDesc = prometheus.NewDesc(
		"decisionsampler_samples",
		"Number of sampled issues by destination, project and category",
		[]string{"destination", "project", "category"},
		nil,
	)
)

// SampleCounter is the store the collector reads on every scrape.
type SampleCounter interface {
	CountSamples(ctx context.Context) ([]models.SampleCount, error)
}

// SampleCollector is a custom Prometheus collector that reads sample counts
// from the database on each scrape.
type SampleCollector struct {
	store SampleCounter
}

// NewSampleCollector creates a collector backed by store.
func NewSampleCollector(store SampleCounter) *SampleCollector {
	return &SampleCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *SampleCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- samplesDesc
}

// Collect queries the database for sample counts and emits them as gauges.
func (c *SampleCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.store.CountSamples(context.Background())
	if err != nil {
		slog.Error("failed to collect sample metrics", "error", err)
		return
	}
	for _, sc := range counts {
		ch <- prometheus.MustNewConstMetric(
			samplesDesc,
			prometheus.GaugeValue,
			float64(sc.Count),
			sc.Destination,
			sc.Project,
			sc.Category.String(),
		)
	}
}

var registerOnce sync.Once

// Init registers the sample collector with the default registry.
// Must be called once at startup.
func Init(store SampleCounter) {
	registerOnce.Do(func() {
		prometheus.MustRegister(NewSampleCollector(store))
	})
}
