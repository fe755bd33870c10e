package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"decisionsampler/internal/dataset"
	"decisionsampler/internal/validation"
)

var loadCollection string

// loadCmd imports issue and label documents
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import issue or label documents from a JSON export",
}

var loadIssuesCmd = &cobra.Command{
	Use:   "issues [file]",
	Short: "Import a JSON array of issue documents into a collection",
	Long: `Each document needs an "id" and a "key" (for example CASSANDRA-123).
The full document is stored as the payload and written unchanged to samples.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := loadCollection
		if collection == "" {
			collection = cfg.SourceCollection
		}
		if !validation.ValidateName(collection) {
			return fmt.Errorf("invalid collection %q", collection)
		}

		issues, err := dataset.ParseIssueFile(args[0], collection)
		if err != nil {
			return err
		}

		database, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.UpsertIssues(cmd.Context(), issues); err != nil {
			return err
		}
		slog.Info("issues loaded", "collection", collection, "count", len(issues), "file", args[0])
		return nil
	},
}

var loadLabelsCmd = &cobra.Command{
	Use:   "labels [file]",
	Short: "Import a JSON array of label documents",
	Long: `Each document needs an "_id" (or "id") of the form <namespace>-<issue id>
and a "predictions" object keyed by model id. Predictions of models already
stored for the same id are kept and merged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		labels, err := dataset.ParseLabelFile(args[0])
		if err != nil {
			return err
		}

		database, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.UpsertIssueLabels(cmd.Context(), labels); err != nil {
			return err
		}
		slog.Info("labels loaded", "count", len(labels), "file", args[0])
		return nil
	},
}

func init() {
	loadIssuesCmd.Flags().StringVar(&loadCollection, "collection", "", "Target collection (default: SOURCE_COLLECTION)")

	loadCmd.AddCommand(loadIssuesCmd)
	loadCmd.AddCommand(loadLabelsCmd)
}
