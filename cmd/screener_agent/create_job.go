package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/types"
)

var (
	createJobFile       string
	createJobConfigPath string
)

var createJobCmd = &cobra.Command{
	Use:   "create-job",
	Short: "Store a job requirement definition",
	Long:  "Load a job requirement JSON file (id, skills, experience bounds) and store it for candidate evaluation.",
	RunE:  runCreateJob,
}

func init() {
	createJobCmd.Flags().StringVarP(&createJobFile, "file", "f", "", "Path to the job requirement JSON file (required)")
	createJobCmd.Flags().StringVar(&createJobConfigPath, "config", "", "Path to JSON config file")
	_ = createJobCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(createJobCmd)
}

func runCreateJob(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	data, err := os.ReadFile(createJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	var job types.JobRequirement
	if err := json.Unmarshal(data, &job); err != nil {
		return fmt.Errorf("failed to parse job JSON: %w", err)
	}
	if job.ID == "" {
		return fmt.Errorf("job file must set an 'id'")
	}

	d, err := buildDeps(ctx, createJobConfigPath)
	if err != nil {
		return err
	}
	defer d.close()

	if err := d.database.CreateJob(ctx, &job); err != nil {
		return err
	}

	fmt.Printf("Job %s stored\n", job.ID)
	return nil
}
