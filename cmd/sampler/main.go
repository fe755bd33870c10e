package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"decisionsampler/internal/config"
	"decisionsampler/internal/db"
)

var (
	verbose bool

	cfg     *config.Config
	yamlCfg *config.YAMLConfig
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sampler",
	Short: "Quota sampling of architectural decisions from issue trackers",
	Long: `sampler draws random issues per project, classifies each one with the
labels of a single prediction model and stores an architectural and a
non-architectural sample capped per project.

Configuration is read from environment variables and from the optional
YAML file named by CONFIG_FILE (default config.yaml).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		var err error
		yamlCfg, err = config.LoadYAMLConfig(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.ConfigFile, err)
		}
		cfg.ApplyYAML(yamlCfg)

		slog.SetDefault(newLogger(cfg, verbose))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a text logger in development and a JSON logger otherwise.
func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// openDB connects to the database and applies pending migrations.
func openDB(ctx context.Context) (*db.DB, error) {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}
