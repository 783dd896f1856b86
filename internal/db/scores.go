package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/candidate-screener/internal/types"
)

// UpsertScoreBreakdown stores the detailed score report for a candidate
func (db *DB) UpsertScoreBreakdown(ctx context.Context, candidateID string, record types.ScoreRecord) error {
	explainJSON, err := json.Marshal(record.Explainability)
	if err != nil {
		return fmt.Errorf("failed to marshal explainability: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO score_breakdowns
		   (candidate_id, skill_match, experience_relevance, education_fit, overall, final_rank, fraud_penalty_applied, explainability)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (candidate_id) DO UPDATE SET
		   skill_match = $2, experience_relevance = $3, education_fit = $4,
		   overall = $5, final_rank = $6, fraud_penalty_applied = $7,
		   explainability = $8, updated_at = NOW()`,
		candidateID,
		record.SkillMatchScore, record.ExperienceRelevanceScore, record.EducationFitScore,
		record.OverallScore, record.FinalRankScore, record.FraudPenaltyApplied, explainJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert score breakdown: %w", err)
	}
	return nil
}

// SaveRankSummary stores the breakdown of a re-rank computation
func (db *DB) SaveRankSummary(ctx context.Context, candidateID string, summary types.RankSummary) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO rank_summaries
		   (candidate_id, overall_score, fraud_score, fraud_penalty, priority_bonus, final_rank, duplicate_detected, calculated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (candidate_id) DO UPDATE SET
		   overall_score = $2, fraud_score = $3, fraud_penalty = $4,
		   priority_bonus = $5, final_rank = $6, duplicate_detected = $7, calculated_at = $8`,
		candidateID,
		summary.OverallScore, summary.FraudScore, summary.FraudPenalty,
		summary.PriorityBonus, summary.FinalRankScore, summary.DuplicateDetected, summary.CalculatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save rank summary: %w", err)
	}
	return nil
}
