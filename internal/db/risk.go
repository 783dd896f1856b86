package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// UpsertRiskRecord stores a candidate's fraud assessment
func (db *DB) UpsertRiskRecord(ctx context.Context, candidateID string, assessment *types.FraudAssessment) error {
	detailsJSON, err := json.Marshal(assessment.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal fraud details: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO risk_records (candidate_id, fraud_score, flags, details)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (candidate_id) DO UPDATE SET fraud_score = $2, flags = $3, details = $4, updated_at = NOW()`,
		candidateID, assessment.FraudScore, assessment.Flags, detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert risk record: %w", err)
	}
	return nil
}

// GetFraudAssessment retrieves a candidate's stored fraud assessment, or nil
// if no risk record exists
func (db *DB) GetFraudAssessment(ctx context.Context, candidateID string) (*types.FraudAssessment, error) {
	var assessment types.FraudAssessment
	var detailsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT fraud_score, flags, details FROM risk_records WHERE candidate_id = $1`,
		candidateID,
	).Scan(&assessment.FraudScore, &assessment.Flags, &detailsJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fraud assessment: %w", err)
	}

	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &assessment.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fraud details: %w", err)
		}
	}
	return &assessment, nil
}
