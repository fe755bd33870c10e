package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"decisionsampler/internal/config"
	"decisionsampler/internal/db"
	"decisionsampler/internal/models"
	"decisionsampler/internal/sampling"
)

// IssueStore supplies candidate issues.
type IssueStore interface {
	SampleIssues(ctx context.Context, collection, keyPrefix string, size int) ([]models.Issue, error)
	FetchIssues(ctx context.Context, collection, keyPrefix string, limit int) ([]models.Issue, error)
}

// LabelStore resolves issue labels, in bulk or one id at a time.
type LabelStore interface {
	GetIssueLabels(ctx context.Context, ids []string) (map[string]models.IssueLabel, error)
	GetIssueLabel(ctx context.Context, id string) (*models.IssueLabel, error)
}

// SampleSink receives written samples and run bookkeeping.
type SampleSink interface {
	InsertSample(ctx context.Context, sample *models.Sample) error
	CreateSampleRun(ctx context.Context, run *models.SampleRun) error
	CompleteSampleRun(ctx context.Context, run *models.SampleRun) error
	FailSampleRun(ctx context.Context, id uuid.UUID, errMsg string) error
}

// RunnerOptions holds the sampling settings shared by every project.
type RunnerOptions struct {
	ModelID          string
	Namespace        string
	SourceCollection string
	Strategy         string
	SampleSize       int
	FetchLimit       int
	LabelLookup      string
	OutputMode       string
	Rand             *rand.Rand
}

// OptionsFromConfig builds runner options from the application config.
func OptionsFromConfig(cfg *config.Config) RunnerOptions {
	seed := uint64(cfg.RandomSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return RunnerOptions{
		ModelID:          cfg.ModelID,
		Namespace:        cfg.Namespace,
		SourceCollection: cfg.SourceCollection,
		Strategy:         cfg.Strategy,
		SampleSize:       cfg.SampleSize,
		FetchLimit:       cfg.FetchLimit,
		LabelLookup:      cfg.LabelLookup,
		OutputMode:       cfg.OutputMode,
		Rand:             rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// ProjectReport summarizes one project's run.
type ProjectReport struct {
	Run          models.SampleRun
	Destinations map[models.Category]string
}

// SampleRunner draws candidates for each configured project, partitions them
// against their labels and writes the selected issues to the output destinations.
type SampleRunner struct {
	issues IssueStore
	labels LabelStore
	sink   SampleSink
	opts   RunnerOptions
	logger *slog.Logger
}

// NewSampleRunner creates a new sample runner.
func NewSampleRunner(issues IssueStore, labels LabelStore, sink SampleSink, opts RunnerOptions) *SampleRunner {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	return &SampleRunner{
		issues: issues,
		labels: labels,
		sink:   sink,
		opts:   opts,
		logger: slog.Default(),
	}
}

// WithLogger replaces the runner's logger.
func (r *SampleRunner) WithLogger(logger *slog.Logger) *SampleRunner {
	r.logger = logger
	return r
}

// Run processes projects one after another. The first failure aborts the
// whole run; reports for projects finished before it are still returned.
func (r *SampleRunner) Run(ctx context.Context, projects []config.ProjectConfig) ([]ProjectReport, error) {
	r.logger.Info("sample run started",
		"projects", len(projects),
		"model_id", r.opts.ModelID,
		"strategy", r.opts.Strategy,
		"label_lookup", r.opts.LabelLookup,
		"output_mode", r.opts.OutputMode,
	)

	reports := make([]ProjectReport, 0, len(projects))
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := r.RunProject(ctx, project)
		if err != nil {
			return reports, fmt.Errorf("project %s: %w", project.KeyPrefix, err)
		}
		reports = append(reports, *report)
	}

	return reports, nil
}

// RunProject samples a single project to completion.
func (r *SampleRunner) RunProject(ctx context.Context, project config.ProjectConfig) (*ProjectReport, error) {
	candidates, err := r.candidates(ctx, project.KeyPrefix)
	if err != nil {
		return nil, err
	}

	run := &models.SampleRun{
		Project:               project.KeyPrefix,
		ModelID:               r.opts.ModelID,
		Strategy:              r.opts.Strategy,
		ArchitecturalLimit:    project.ArchitecturalLimit,
		NonArchitecturalLimit: project.NonArchitecturalLimit,
	}
	if err := r.sink.CreateSampleRun(ctx, run); err != nil {
		return nil, err
	}

	report, err := r.partitionAndWrite(ctx, project, candidates, run)
	if err != nil {
		// The run row must be closed even when ctx was cancelled mid-write.
		if failErr := r.sink.FailSampleRun(context.WithoutCancel(ctx), run.ID, err.Error()); failErr != nil {
			r.logger.Error("failed to mark sample run failed", "run_id", run.ID, "error", failErr)
		}
		return nil, err
	}
	return report, nil
}

func (r *SampleRunner) partitionAndWrite(ctx context.Context, project config.ProjectConfig, candidates []models.Issue, run *models.SampleRun) (*ProjectReport, error) {
	labels, lookupErr, err := r.labelSource(ctx, candidates)
	if err != nil {
		return nil, err
	}

	quota := sampling.Quota{
		Architectural:    project.ArchitecturalLimit,
		NonArchitectural: project.NonArchitecturalLimit,
	}
	res := sampling.Partition(candidates, labels, r.opts.Namespace, r.opts.ModelID, quota)
	if err := lookupErr(); err != nil {
		return nil, fmt.Errorf("failed to resolve labels: %w", err)
	}

	destinations := Destinations(r.opts.OutputMode, r.opts.SourceCollection, project.KeyPrefix)
	for _, sel := range res.Selected {
		sample := &models.Sample{
			RunID:       run.ID,
			Destination: destinations[sel.Category],
			Project:     project.KeyPrefix,
			Category:    sel.Category,
			IssueID:     sel.Issue.ID,
			Payload:     sel.Issue.Payload,
		}
		if err := r.sink.InsertSample(ctx, sample); err != nil {
			return nil, err
		}
	}

	run.Candidates = len(candidates)
	run.Architectural = res.Architectural
	run.NonArchitectural = res.NonArchitectural
	run.Unlabeled = res.Unlabeled
	run.Dropped = res.Dropped
	if err := r.sink.CompleteSampleRun(ctx, run); err != nil {
		return nil, err
	}

	r.logger.Info("saved architectural decisions", "project", project.KeyPrefix, "count", res.Architectural)
	r.logger.Info("saved non-architectural decisions", "project", project.KeyPrefix, "count", res.NonArchitectural)
	if !run.QuotaMet() {
		r.logger.Warn("quota not reached",
			"project", project.KeyPrefix,
			"architectural", res.Architectural,
			"architectural_limit", project.ArchitecturalLimit,
			"non_architectural", res.NonArchitectural,
			"non_architectural_limit", project.NonArchitecturalLimit,
			"candidates", len(candidates),
			"unlabeled", res.Unlabeled,
		)
	}

	return &ProjectReport{Run: *run, Destinations: destinations}, nil
}

// candidates obtains the candidate sequence for a project.
func (r *SampleRunner) candidates(ctx context.Context, keyPrefix string) ([]models.Issue, error) {
	switch r.opts.Strategy {
	case config.StrategyShuffle:
		issues, err := r.issues.FetchIssues(ctx, r.opts.SourceCollection, keyPrefix, r.opts.FetchLimit)
		if err != nil {
			return nil, err
		}
		sampling.Shuffle(issues, r.opts.Rand)
		return issues, nil
	case config.StrategyServer, "":
		return r.issues.SampleIssues(ctx, r.opts.SourceCollection, keyPrefix, r.opts.SampleSize)
	default:
		return nil, fmt.Errorf("unknown sampling strategy %q", r.opts.Strategy)
	}
}

// labelSource returns the label lookup for the candidates and a function
// reporting any lookup failure that happened during partitioning.
func (r *SampleRunner) labelSource(ctx context.Context, candidates []models.Issue) (sampling.Labels, func() error, error) {
	if r.opts.LabelLookup == config.LookupSingle {
		lazy := &lazyLabels{ctx: ctx, store: r.labels}
		return lazy, lazy.Err, nil
	}

	labels, err := r.labels.GetIssueLabels(ctx, sampling.LabelIDs(r.opts.Namespace, candidates))
	if err != nil {
		return nil, nil, err
	}
	return sampling.LabelMap(labels), func() error { return nil }, nil
}

// lazyLabels looks labels up one id at a time as the partitioner asks for them.
// After the first store error every lookup reports a miss.
type lazyLabels struct {
	ctx   context.Context
	store LabelStore
	err   error
}

func (l *lazyLabels) Lookup(id string) (models.IssueLabel, bool) {
	if l.err != nil {
		return models.IssueLabel{}, false
	}
	label, err := l.store.GetIssueLabel(l.ctx, id)
	if err != nil {
		if !errors.Is(err, db.ErrLabelNotFound) {
			l.err = err
		}
		return models.IssueLabel{}, false
	}
	return *label, true
}

func (l *lazyLabels) Err() error {
	return l.err
}

// Destinations returns the output destination for each category.
func Destinations(outputMode, collection, keyPrefix string) map[models.Category]string {
	if outputMode == config.OutputSplit {
		project := strings.ToLower(keyPrefix)
		return map[models.Category]string{
			models.CategoryArchitectural:    "Architectural_" + project,
			models.CategoryNonArchitectural: "Non_architectural_" + project,
		}
	}
	combined := "Sample" + collection
	return map[models.Category]string{
		models.CategoryArchitectural:    combined,
		models.CategoryNonArchitectural: combined,
	}
}
