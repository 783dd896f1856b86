package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/ranking"
)

var (
	rerankCandidateID string
	rerankOverall     int
	rerankFraud       int
	rerankConfigPath  string
)

var rerankCmd = &cobra.Command{
	Use:   "rerank",
	Short: "Recompute a candidate's final rank from component scores",
	Long:  "Recompute and persist the consolidated rank from an overall score and fraud score, applying the stored priority tier and duplicate cap.",
	RunE:  runRerank,
}

func init() {
	rerankCmd.Flags().StringVar(&rerankCandidateID, "candidate-id", "", "Candidate ID to re-rank (required)")
	rerankCmd.Flags().IntVar(&rerankOverall, "overall", 0, "Overall evaluation score in [0, 100]")
	rerankCmd.Flags().IntVar(&rerankFraud, "fraud", 0, "Fraud score in [0, 100]")
	rerankCmd.Flags().StringVar(&rerankConfigPath, "config", "", "Path to JSON config file")
	_ = rerankCmd.MarkFlagRequired("candidate-id")
	rootCmd.AddCommand(rerankCmd)
}

func runRerank(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	d, err := buildDeps(ctx, rerankConfigPath)
	if err != nil {
		return err
	}
	defer d.close()

	reranker := ranking.NewReranker(d.database, d.logger)
	rank := reranker.Rerank(ctx, rerankCandidateID, rerankOverall, rerankFraud)

	fmt.Printf("Candidate %s re-ranked: final rank %d\n", rerankCandidateID, rank)
	return nil
}
