// Package intake registers incoming candidates and assigns their initial
// processing priority before the evaluation pipeline runs.
package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/types"
)

// StatusReceived is the intake status before any pipeline stage has run.
const StatusReceived = "RECEIVED"

// AuditStepUpload labels the intake entry in the candidate audit trail.
const AuditStepUpload = "UPLOAD"

// Store is the persistence subset intake depends on.
type Store interface {
	CreateCandidate(ctx context.Context, c *db.Candidate) error
	AppendAuditLog(ctx context.Context, candidateID, step, status string, details any) error
}

// Service registers candidates and writes their intake audit entry.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService builds an intake service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// NewCandidateID mints a short unique candidate identifier.
func NewCandidateID() string {
	return "CAND-" + strings.Split(uuid.NewString(), "-")[0]
}

// PriorityScore computes the initial queue ordering score from the
// candidate's priority tier and application source. Higher drains first.
func PriorityScore(tier types.PriorityTier, source string) int {
	score := 30
	switch tier {
	case types.PriorityHigh:
		score = 100
	case types.PriorityMedium:
		score = 60
	}

	switch strings.ToLower(strings.TrimSpace(source)) {
	case "referral":
		score += 20
	case "ats":
		score += 10
	}
	return score
}

// Register creates the candidate record and its UPLOAD audit entry, and
// returns the newly minted candidate.
func (s *Service) Register(ctx context.Context, req *types.UploadCandidateRequest) (*db.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload request: %w", err)
	}

	tier := types.PriorityTier(req.Priority)
	if tier == "" {
		tier = types.PriorityLow
	}

	candidate := &db.Candidate{
		ID:             NewCandidateID(),
		JobID:          req.JobID,
		Source:         req.Source,
		PriorityTier:   tier,
		PriorityScore:  PriorityScore(tier, req.Source),
		ResumeFilePath: req.ResumeFilePath,
		Status:         StatusReceived,
	}

	if err := s.store.CreateCandidate(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to register candidate: %w", err)
	}

	if err := s.store.AppendAuditLog(ctx, candidate.ID, AuditStepUpload, "OK", map[string]any{
		"jobId":         candidate.JobID,
		"source":        candidate.Source,
		"priorityScore": candidate.PriorityScore,
	}); err != nil {
		// The candidate row is already committed; a missing audit entry is
		// not worth rejecting the upload over.
		s.logger.Warn("intake audit entry not recorded",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err))
	}

	s.logger.Info("candidate registered",
		zap.String("candidate_id", candidate.ID),
		zap.String("job_id", candidate.JobID),
		zap.Int("priority_score", candidate.PriorityScore))

	return candidate, nil
}
