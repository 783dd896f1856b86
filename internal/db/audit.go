package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one append-only record of a processing step outcome.
type AuditEntry struct {
	ID          uuid.UUID       `json:"id"`
	CandidateID string          `json:"candidateId"`
	Step        string          `json:"step"`
	Status      string          `json:"status"`
	Details     json.RawMessage `json:"details,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AppendAuditLog records a processing step outcome for a candidate
func (db *DB) AppendAuditLog(ctx context.Context, candidateID, step, status string, details any) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, candidate_id, step, status, details)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), candidateID, step, status, detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// GetAuditTrail retrieves a candidate's audit entries in insertion order
func (db *DB) GetAuditTrail(ctx context.Context, candidateID string) ([]AuditEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, step, status, details, created_at
		 FROM audit_logs WHERE candidate_id = $1
		 ORDER BY created_at ASC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit trail: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Step, &e.Status, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit trail: %w", err)
	}
	return entries, nil
}
