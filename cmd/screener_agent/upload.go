package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/intake"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

var (
	uploadJobID       string
	uploadSource      string
	uploadPriority    string
	uploadProfilePath string
	uploadRawTextPath string
	uploadConfigPath  string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Register a candidate for a job",
	Long:  "Register a candidate with an optional structured profile JSON file or raw resume text file, and assign the initial processing priority.",
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadJobID, "job-id", "", "Job ID the candidate applies to (required)")
	uploadCmd.Flags().StringVar(&uploadSource, "source", "", "Application source (e.g. Referral, ATS)")
	uploadCmd.Flags().StringVar(&uploadPriority, "priority", "", "Priority tier: high, medium or low")
	uploadCmd.Flags().StringVar(&uploadProfilePath, "profile", "", "Path to a structured profile JSON file")
	uploadCmd.Flags().StringVar(&uploadRawTextPath, "raw-text", "", "Path to a raw resume text file")
	uploadCmd.Flags().StringVar(&uploadConfigPath, "config", "", "Path to JSON config file")
	_ = uploadCmd.MarkFlagRequired("job-id")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	req := &types.UploadCandidateRequest{
		JobID:    uploadJobID,
		Source:   uploadSource,
		Priority: uploadPriority,
	}

	var profile *types.CandidateProfile
	if uploadProfilePath != "" {
		profileJSON, err := os.ReadFile(uploadProfilePath)
		if err != nil {
			return fmt.Errorf("failed to read profile file: %w", err)
		}
		if err := schemas.ValidateCandidateProfile(profileJSON); err != nil {
			return fmt.Errorf("profile does not match schema: %w", err)
		}
		profile = &types.CandidateProfile{}
		if err := json.Unmarshal(profileJSON, profile); err != nil {
			return fmt.Errorf("failed to parse profile JSON: %w", err)
		}
		req.Profile = profileJSON
	}

	if uploadRawTextPath != "" {
		rawText, err := os.ReadFile(uploadRawTextPath)
		if err != nil {
			return fmt.Errorf("failed to read raw text file: %w", err)
		}
		req.RawText = string(rawText)
	}

	d, err := buildDeps(ctx, uploadConfigPath)
	if err != nil {
		return err
	}
	defer d.close()

	candidate, err := intake.NewService(d.database, d.logger).Register(ctx, req)
	if err != nil {
		return err
	}

	if profile != nil || req.RawText != "" {
		if err := d.database.SaveCandidateProfile(ctx, candidate.ID, req.RawText, profile); err != nil {
			return fmt.Errorf("candidate %s registered but resume data not stored: %w", candidate.ID, err)
		}
	}

	fmt.Printf("Candidate %s registered for job %s (priority score %d)\n",
		candidate.ID, candidate.JobID, candidate.PriorityScore)
	return nil
}
