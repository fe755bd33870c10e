package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"decisionsampler/internal/server"
)

// serveCmd starts the read-only HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve run history, sample counts and metrics over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()
		log.Println("Migrations completed successfully")

		srv := server.New(cfg)
		srv.RegisterRoutes(database, yamlCfg.GetProjects())

		// Graceful shutdown
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("Server error: %v", err)
			}
		}()

		log.Printf("Server started on %s", cfg.ServerAddr)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		log.Println("Server exited")
		return nil
	},
}
