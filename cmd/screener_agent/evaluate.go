package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/pipeline"
)

var (
	evalCandidateID string
	evalJobID       string
	evalConfigPath  string
	evalVerbose     bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the full evaluation pipeline for one candidate",
	Long:  "Run parsing, fraud analysis, optional verification and scoring for a registered candidate, persisting the consolidated rank.",
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evalCandidateID, "candidate-id", "", "Candidate ID to evaluate (required)")
	evaluateCmd.Flags().StringVar(&evalJobID, "job-id", "", "Job ID to score against (defaults to the candidate's registered job)")
	evaluateCmd.Flags().StringVar(&evalConfigPath, "config", "", "Path to JSON config file")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print detailed evaluation summaries")
	_ = evaluateCmd.MarkFlagRequired("candidate-id")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	d, err := buildDeps(ctx, evalConfigPath)
	if err != nil {
		return err
	}
	defer d.close()

	jobID := evalJobID
	if jobID == "" {
		candidate, err := d.database.GetCandidate(ctx, evalCandidateID)
		if err != nil {
			return err
		}
		if candidate == nil {
			return fmt.Errorf("candidate not found: %s", evalCandidateID)
		}
		jobID = candidate.JobID
	}

	state := d.newOrchestrator().Run(ctx, evalCandidateID, jobID)

	if evalVerbose || d.cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintScoreBreakdown(state.Evaluation)
		printer.PrintFraudAssessment(state.Fraud)
		printer.PrintPipelineResult(state)
	}

	if state.Status == pipeline.StatusFailed {
		return fmt.Errorf("evaluation failed: %v", state.Errors)
	}

	fmt.Printf("Candidate %s evaluated: final rank %d\n", evalCandidateID, state.FinalRank)
	return nil
}
