package ranking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/types"
)

// defaultRetryDelay is waited before the single candidate-lookup retry.
// Covers eventual-consistency lag between an upload write and this read.
const defaultRetryDelay = 1500 * time.Millisecond

// CandidateStore is the persistence subset the re-ranker depends on.
// Lookups return the zero value with a nil error when no record exists.
type CandidateStore interface {
	GetCandidatePriority(ctx context.Context, candidateID string) (types.PriorityTier, error)
	GetFraudAssessment(ctx context.Context, candidateID string) (*types.FraudAssessment, error)
	UpdateCandidateRank(ctx context.Context, candidateID string, rank int, status string) error
	SaveRankSummary(ctx context.Context, candidateID string, summary types.RankSummary) error
}

// Reranker recomputes a candidate's final rank outside the main pipeline,
// e.g. after a job requirement edit or a manual fraud review.
type Reranker struct {
	store      CandidateStore
	logger     *zap.Logger
	retryDelay time.Duration
}

// NewReranker creates a re-ranker backed by the given store.
func NewReranker(store CandidateStore, logger *zap.Logger) *Reranker {
	return &Reranker{
		store:      store,
		logger:     logger,
		retryDelay: defaultRetryDelay,
	}
}

// Rerank recomputes and persists the final rank for a candidate. The
// candidate lookup is retried exactly once after a fixed delay to tolerate
// an upload write that has not become readable yet; if the lookup still
// misses, the re-rank is abandoned with a zero rank rather than an error.
// The stored risk record supplies the duplicate flag so that the hard cap
// applies here exactly as it does in the pipeline's scoring stage.
func (r *Reranker) Rerank(ctx context.Context, candidateID string, overallScore, fraudScore int) int {
	tier, err := r.lookupPriorityWithRetry(ctx, candidateID)
	if err != nil {
		r.logger.Warn("re-rank abandoned: candidate lookup exhausted",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
		return 0
	}

	duplicateDetected := false
	if assessment, err := r.store.GetFraudAssessment(ctx, candidateID); err != nil {
		r.logger.Warn("re-rank: risk record unavailable, assuming no duplicate",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
	} else if assessment != nil {
		duplicateDetected = assessment.Details.DuplicateDetected
	}

	rank := Consolidate(overallScore, fraudScore, tier, duplicateDetected)

	r.logger.Info("re-rank computed",
		zap.String("candidate_id", candidateID),
		zap.Int("overall_score", overallScore),
		zap.Int("fraud_score", fraudScore),
		zap.String("priority", string(tier)),
		zap.Bool("duplicate", duplicateDetected),
		zap.Int("final_rank", rank))

	if err := r.store.UpdateCandidateRank(ctx, candidateID, rank, "PROCESSED"); err != nil {
		r.logger.Error("re-rank: failed to update candidate rank",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
	}

	summary := types.RankSummary{
		OverallScore:      overallScore,
		FraudScore:        fraudScore,
		FraudPenalty:      FraudPenalty(fraudScore),
		PriorityBonus:     PriorityBonus(tier),
		FinalRankScore:    rank,
		DuplicateDetected: duplicateDetected,
		CalculatedAt:      time.Now().UTC(),
	}
	if err := r.store.SaveRankSummary(ctx, candidateID, summary); err != nil {
		r.logger.Error("re-rank: failed to save rank summary",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
	}

	return rank
}

// lookupPriorityWithRetry resolves the candidate's priority tier, retrying
// exactly once after the fixed delay. This is the only retry policy in the
// evaluation core.
func (r *Reranker) lookupPriorityWithRetry(ctx context.Context, candidateID string) (types.PriorityTier, error) {
	tier, err := r.store.GetCandidatePriority(ctx, candidateID)
	if err == nil && tier != "" {
		return tier, nil
	}

	r.logger.Warn("candidate lookup missed, retrying once",
		zap.String("candidate_id", candidateID),
		zap.Duration("delay", r.retryDelay),
		zap.Error(err))

	select {
	case <-time.After(r.retryDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	tier, err = r.store.GetCandidatePriority(ctx, candidateID)
	if err != nil {
		return "", err
	}
	if tier == "" {
		return "", &LookupExhaustedError{CandidateID: candidateID}
	}
	return tier, nil
}

// LookupExhaustedError indicates the candidate was still missing after the
// bounded retry.
type LookupExhaustedError struct {
	CandidateID string
}

func (e *LookupExhaustedError) Error() string {
	return "candidate not found after retry: " + e.CandidateID
}
