package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"decisionsampler/internal/config"
	"decisionsampler/internal/jobs"
	"decisionsampler/internal/metrics"
	"decisionsampler/internal/validation"
)

var runProjects []string

// runCmd samples every configured project
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample architectural and non-architectural issues per project",
	Long: `Draws candidates for each project, classifies them with MODEL_ID and
writes the selected issues until both caps are met or the candidates run out.

Example:
  sampler run
  sampler run --project HDFS --project YARN`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	runCmd.Flags().StringSliceVarP(&runProjects, "project", "p", nil, "Only sample these key prefixes (default: all configured)")
}

func runSample(cmd *cobra.Command, args []string) error {
	if err := validation.ValidateSampling(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	projects, err := selectProjects(yamlCfg, runProjects)
	if err != nil {
		return err
	}
	if err := validation.ValidateProjects(projects); err != nil {
		return fmt.Errorf("invalid projects: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	runner := jobs.NewSampleRunner(database, database, database, jobs.OptionsFromConfig(cfg)).
		WithLogger(slog.Default())
	reports, runErr := runner.Run(ctx, projects)

	printReports(cmd.OutOrStdout(), reports)

	if cfg.PushgatewayURL != "" && len(reports) > 0 {
		pushReports(ctx, reports)
	}

	return runErr
}

// selectProjects narrows the configured projects to the requested prefixes.
func selectProjects(y *config.YAMLConfig, prefixes []string) ([]config.ProjectConfig, error) {
	if len(prefixes) == 0 {
		return y.GetProjects(), nil
	}

	projects := make([]config.ProjectConfig, 0, len(prefixes))
	for _, prefix := range prefixes {
		p := y.GetProjectByPrefix(prefix)
		if p == nil {
			return nil, fmt.Errorf("project %s is not configured", prefix)
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

func printReports(w io.Writer, reports []jobs.ProjectReport) {
	for _, r := range reports {
		run := r.Run
		fmt.Fprintf(w, "%-10s architectural %d/%d  non-architectural %d/%d  candidates %d  unlabeled %d  dropped %d\n",
			run.Project,
			run.Architectural, run.ArchitecturalLimit,
			run.NonArchitectural, run.NonArchitecturalLimit,
			run.Candidates, run.Unlabeled, run.Dropped,
		)
	}
}

func pushReports(ctx context.Context, reports []jobs.ProjectReport) {
	gauges := metrics.NewRunGauges()
	for _, r := range reports {
		gauges.Observe(r.Run)
	}
	if err := gauges.Push(ctx, cfg.PushgatewayURL); err != nil {
		slog.Warn("run metrics not pushed", "error", err)
		return
	}
	slog.Debug("run metrics pushed", "url", cfg.PushgatewayURL)
}
