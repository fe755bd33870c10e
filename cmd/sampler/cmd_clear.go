package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"decisionsampler/internal/validation"
)

// clearCmd removes the samples written to a destination
var clearCmd = &cobra.Command{
	Use:   "clear [destination]",
	Short: "Delete every sample written to a destination",
	Long: `Runs append to their destinations. Clear a destination before a fresh run
to start from an empty sample.

Example:
  sampler clear SampleApache
  sampler clear Architectural_cassandra`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destination := args[0]
		if !validation.ValidateName(destination) {
			return fmt.Errorf("invalid destination %q", destination)
		}

		database, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()

		deleted, err := database.DeleteDestination(cmd.Context(), destination)
		if err != nil {
			return err
		}
		slog.Info("destination cleared", "destination", destination, "deleted", deleted)
		return nil
	},
}
