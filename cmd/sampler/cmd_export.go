package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"decisionsampler/internal/dataset"
)

var (
	exportDestination string
	exportSize        int
	exportOut         string
)

// exportCmd writes a random subset of a destination to a JSON file
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a random subset of a sample destination to JSON",
	Long: `Example:
  sampler export --destination SampleApache --size 700 --out sampleApache.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportSize <= 0 {
			return fmt.Errorf("--size must be positive")
		}
		destination := exportDestination
		if destination == "" {
			destination = "Sample" + cfg.SourceCollection
		}
		out := exportOut
		if out == "" {
			out = destination + ".json"
		}

		database, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()

		samples, err := database.RandomSamples(cmd.Context(), destination, exportSize)
		if err != nil {
			return err
		}
		if err := dataset.WriteSampleFile(out, samples); err != nil {
			return err
		}

		slog.Info("samples exported", "destination", destination, "count", len(samples), "file", out)
		if len(samples) < exportSize {
			slog.Warn("destination holds fewer samples than requested", "requested", exportSize, "exported", len(samples))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDestination, "destination", "", "Destination to export (default: Sample<SOURCE_COLLECTION>)")
	exportCmd.Flags().IntVar(&exportSize, "size", 700, "Number of samples to export")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: <destination>.json)")
}
