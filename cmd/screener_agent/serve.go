package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/intake"
	"github.com/jonathan/candidate-screener/internal/ranking"
	"github.com/jonathan/candidate-screener/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for candidate intake, evaluation and re-ranking.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	d, err := buildDeps(context.Background(), serveConfigPath)
	if err != nil {
		return err
	}
	defer d.close()

	port := d.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(server.Config{Port: port}, server.Deps{
		Registrar: intake.NewService(d.database, d.logger),
		Evaluator: d.newOrchestrator(),
		Reranker:  ranking.NewReranker(d.database, d.logger),
		Store:     d.database,
		Logger:    d.logger,
	})

	return srv.Start()
}
