package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Candidate is the intake record for an applicant on a specific job.
type Candidate struct {
	ID             string             `json:"id"`
	JobID          string             `json:"jobId"`
	Source         string             `json:"source"`
	PriorityTier   types.PriorityTier `json:"priorityTier"`
	PriorityScore  int                `json:"priorityScore"`
	ResumeFilePath string             `json:"resumeFilePath,omitempty"`
	RankScore      *int               `json:"rankScore,omitempty"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// CreateCandidate inserts a new candidate intake record
func (db *DB) CreateCandidate(ctx context.Context, c *Candidate) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidates (id, job_id, source, priority_tier, priority_score, resume_file_path, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.JobID, c.Source, string(c.PriorityTier), c.PriorityScore, c.ResumeFilePath, c.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// GetCandidate retrieves a candidate by ID, or nil if none exists
func (db *DB) GetCandidate(ctx context.Context, candidateID string) (*Candidate, error) {
	var c Candidate
	var tier string
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, source, priority_tier, priority_score, resume_file_path, rank_score, status, created_at, updated_at
		 FROM candidates WHERE id = $1`,
		candidateID,
	).Scan(&c.ID, &c.JobID, &c.Source, &tier, &c.PriorityScore, &c.ResumeFilePath, &c.RankScore, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	c.PriorityTier = types.PriorityTier(tier)
	return &c, nil
}

// GetCandidatePriority retrieves a candidate's priority tier. Returns the
// empty tier with a nil error when the candidate record does not exist.
func (db *DB) GetCandidatePriority(ctx context.Context, candidateID string) (types.PriorityTier, error) {
	var tier string
	err := db.pool.QueryRow(ctx,
		`SELECT priority_tier FROM candidates WHERE id = $1`,
		candidateID,
	).Scan(&tier)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get candidate priority: %w", err)
	}
	return types.PriorityTier(tier), nil
}

// UpdateCandidateRank stores a candidate's consolidated rank and status
func (db *DB) UpdateCandidateRank(ctx context.Context, candidateID string, rank int, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE candidates SET rank_score = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		rank, status, candidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate rank: %w", err)
	}
	return nil
}
