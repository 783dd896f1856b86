package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// SaveCandidateProfile stores the raw resume text and structured profile.
// A nil profile stores NULL so a raw-text-only candidate stays eligible for
// extraction on evaluation.
func (db *DB) SaveCandidateProfile(ctx context.Context, candidateID, rawText string, profile *types.CandidateProfile) error {
	var profileJSON []byte
	if profile != nil {
		var err error
		profileJSON, err = json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidate_profiles (candidate_id, raw_text, profile_json)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (candidate_id) DO UPDATE SET raw_text = $2, profile_json = $3, updated_at = NOW()`,
		candidateID, rawText, profileJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate profile: %w", err)
	}
	return nil
}

// GetCandidateProfile retrieves the stored raw text and structured profile,
// or empty text and a nil profile if none exists
func (db *DB) GetCandidateProfile(ctx context.Context, candidateID string) (string, *types.CandidateProfile, error) {
	var rawText string
	var profileJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT raw_text, profile_json FROM candidate_profiles WHERE candidate_id = $1`,
		candidateID,
	).Scan(&rawText, &profileJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("failed to get candidate profile: %w", err)
	}

	profile, err := decodeProfile(profileJSON)
	if err != nil {
		return "", nil, err
	}
	return rawText, profile, nil
}

// decodeProfile converts a stored profile_json value back into a profile.
// A NULL column or the JSON literal null means no structured profile was
// ever stored, so the candidate only has raw text.
func decodeProfile(data []byte) (*types.CandidateProfile, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// CountDuplicateApplications counts other candidates on the same job whose
// stored profile carries the same email address
func (db *DB) CountDuplicateApplications(ctx context.Context, email, jobID, excludeCandidateID string) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM candidate_profiles p
		 JOIN candidates c ON c.id = p.candidate_id
		 WHERE c.job_id = $1
		   AND p.candidate_id <> $2
		   AND LOWER(p.profile_json->>'email') = $3`,
		jobID, excludeCandidateID, email,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count duplicate applications: %w", err)
	}
	return count, nil
}
