package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/config"
	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/fraud"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/logger"
	"github.com/jonathan/candidate-screener/internal/parsing"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/verification"
)

// loadConfig merges an optional config file with environment fallbacks and
// validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	cfg.FromEnv()
	merged := cfg.MergeWithDefaults(config.Config{Port: config.DefaultPort})
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// deps bundles the runtime collaborators shared by the subcommands.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	database *db.DB
	client   llm.Client
}

// buildDeps connects the database and, when an API key is configured, the
// LLM client. Callers must invoke close when done.
func buildDeps(ctx context.Context, configPath string) (*deps, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or 'database_url' in the config file)")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, logger: log, database: database}

	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		d.client = client
	} else {
		log.Warn("no API key configured; AI suspicion analysis and raw-text extraction are disabled")
	}

	return d, nil
}

func (d *deps) close() {
	if d.client != nil {
		_ = d.client.Close()
	}
	d.database.Close()
	_ = d.logger.Sync()
}

// newOrchestrator wires the four-stage evaluation pipeline over the shared deps.
func (d *deps) newOrchestrator() *pipeline.Orchestrator {
	var analyzer fraud.SuspicionAnalyzer
	if d.client != nil {
		analyzer = fraud.NewGeminiAnalyzer(d.client)
	}

	return pipeline.NewOrchestrator(pipeline.Config{
		Parser:              parsing.NewStoredProfileParser(d.database, d.client, d.logger),
		Fraud:               fraud.NewEngine(d.database, analyzer, d.logger),
		Verifier:            verification.NewStubProvider(),
		Store:               d.database,
		VerificationEnabled: d.cfg.VerificationEnabled,
		Logger:              d.logger,
	})
}
