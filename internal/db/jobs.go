package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// ErrJobNotFound is returned when a job requirement lookup finds no record.
var ErrJobNotFound = errors.New("job requirement not found")

// CreateJob inserts a job requirement record
func (db *DB) CreateJob(ctx context.Context, job *types.JobRequirement) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, must_have_skills, good_to_have_skills, min_exp_years, max_exp_years)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		job.ID, job.Title, job.MustHaveSkills, job.GoodToHaveSkills, job.MinExpYears, job.MaxExpYears,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job requirement by ID. Returns ErrJobNotFound when no
// record exists, since scoring cannot proceed without one.
func (db *DB) GetJob(ctx context.Context, jobID string) (*types.JobRequirement, error) {
	var job types.JobRequirement
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, must_have_skills, good_to_have_skills, min_exp_years, max_exp_years
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.Title, &job.MustHaveSkills, &job.GoodToHaveSkills, &job.MinExpYears, &job.MaxExpYears)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("job %s: %w", jobID, ErrJobNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}
