package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-screener/internal/ranking"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/jonathan/candidate-screener/internal/verification"
)

// Audit trail step and status labels written by the pipeline.
const (
	AuditStepFraudCheck      = "FRAUD_CHECK"
	AuditStepScoringComplete = "SCORING_COMPLETE"

	AuditStatusOK         = "OK"
	AuditStatusWarning    = "WARNING"
	AuditStatusSuccess    = "SUCCESS"
	AuditStatusFraudAlert = "FRAUD_ALERT"
)

// fraudWarningThreshold is the fraud score above which the fraud-check audit
// entry is recorded as a warning.
const fraudWarningThreshold = 75

// ParseResult is the output of the parse collaborator.
type ParseResult struct {
	RawText string
	Profile *types.CandidateProfile
}

// Parser resolves a candidate's extracted resume data. Extraction itself
// (PDF text, LLM structuring) happens upstream of this contract.
type Parser interface {
	Parse(ctx context.Context, candidateID, jobID string) (*ParseResult, error)
}

// FraudAnalyzer produces a fraud assessment for a candidate.
type FraudAnalyzer interface {
	Assess(ctx context.Context, profile *types.CandidateProfile, rawText, candidateID, jobID string) *types.FraudAssessment
}

// Store is the persistence surface the pipeline writes to and reads from.
// Implemented by *db.DB; faked in tests.
type Store interface {
	SaveCandidateProfile(ctx context.Context, candidateID, rawText string, profile *types.CandidateProfile) error
	UpsertRiskRecord(ctx context.Context, candidateID string, assessment *types.FraudAssessment) error
	AppendAuditLog(ctx context.Context, candidateID, step, status string, details any) error
	GetJob(ctx context.Context, jobID string) (*types.JobRequirement, error)
	GetCandidatePriority(ctx context.Context, candidateID string) (types.PriorityTier, error)
	UpdateCandidateRank(ctx context.Context, candidateID string, rank int, status string) error
	UpsertScoreBreakdown(ctx context.Context, candidateID string, record types.ScoreRecord) error
}

// Orchestrator sequences the four evaluation stages over a shared State.
type Orchestrator struct {
	parser              Parser
	fraud               FraudAnalyzer
	verifier            verification.Provider
	store               Store
	verificationEnabled bool
	logger              *zap.Logger
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Parser              Parser
	Fraud               FraudAnalyzer
	Verifier            verification.Provider
	Store               Store
	VerificationEnabled bool
	Logger              *zap.Logger
}

// NewOrchestrator creates a pipeline orchestrator.
func NewOrchestrator(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		parser:              cfg.Parser,
		fraud:               cfg.Fraud,
		verifier:            cfg.Verifier,
		store:               cfg.Store,
		verificationEnabled: cfg.VerificationEnabled,
		logger:              logger,
	}
}

// Run executes the pipeline for one candidate. Stages run strictly in
// sequence; a FAILED status short-circuits all remaining stages. The returned
// state is always non-nil and callers must check Status and Errors: only
// StatusDone with empty Errors is a clean success.
func (o *Orchestrator) Run(ctx context.Context, candidateID, jobID string) *State {
	state := NewState(candidateID, jobID)

	o.runParseStage(ctx, state)
	if state.Failed() {
		return state
	}

	o.runFraudStage(ctx, state)
	if state.Failed() {
		return state
	}

	o.runVerificationStage(ctx, state)

	o.runScoringStage(ctx, state)
	return state
}

// runParseStage resolves the candidate's extracted resume data and persists
// it to the profile store. A parse failure is fatal; the profile-store write
// failure is not, since the data survives in the state.
func (o *Orchestrator) runParseStage(ctx context.Context, state *State) {
	o.logger.Info("pipeline stage: parse", zap.String("candidate_id", state.CandidateID))

	result, err := o.parser.Parse(ctx, state.CandidateID, state.JobID)
	if err != nil {
		o.logger.Error("parse stage failed", zap.String("candidate_id", state.CandidateID), zap.Error(err))
		state.fail(fmt.Sprintf("Parsing Failed: %v", err))
		return
	}

	if err := o.store.SaveCandidateProfile(ctx, state.CandidateID, result.RawText, result.Profile); err != nil {
		o.logger.Warn("failed to persist candidate profile",
			zap.String("candidate_id", state.CandidateID), zap.Error(err))
	}

	state.Apply(Update{
		RawText: &result.RawText,
		Profile: result.Profile,
		Status:  StatusParsed,
	})
}

// runFraudStage assesses fraud and persists the risk record plus an audit
// entry. Persistence failures here are fatal: the risk record is
// pipeline-critical data, unlike the terminal fan-out writes.
func (o *Orchestrator) runFraudStage(ctx context.Context, state *State) {
	o.logger.Info("pipeline stage: fraud detection", zap.String("candidate_id", state.CandidateID))

	assessment := o.fraud.Assess(ctx, state.Profile, state.RawText, state.CandidateID, state.JobID)

	if err := o.store.UpsertRiskRecord(ctx, state.CandidateID, assessment); err != nil {
		state.Apply(Update{Fraud: assessment, Status: StatusFailed, Errors: []string{err.Error()}})
		return
	}

	auditStatus := AuditStatusOK
	if assessment.FraudScore > fraudWarningThreshold {
		auditStatus = AuditStatusWarning
	}
	if err := o.store.AppendAuditLog(ctx, state.CandidateID, AuditStepFraudCheck, auditStatus, assessment.Details); err != nil {
		state.Apply(Update{Fraud: assessment, Status: StatusFailed, Errors: []string{err.Error()}})
		return
	}

	state.Apply(Update{Fraud: assessment, Status: StatusFraudChecked})
}

// runVerificationStage records the verification result, or the disabled
// default when verification is off. This stage never fails the run.
func (o *Orchestrator) runVerificationStage(ctx context.Context, state *State) {
	o.logger.Info("pipeline stage: verification", zap.String("candidate_id", state.CandidateID))

	if !o.verificationEnabled || o.verifier == nil {
		state.Apply(Update{Verification: verification.DisabledResult()})
		return
	}

	result, err := o.verifier.Verify(ctx, state.Profile)
	if err != nil || result == nil {
		o.logger.Warn("verification unavailable, recording disabled result",
			zap.String("candidate_id", state.CandidateID), zap.Error(err))
		state.Apply(Update{Verification: verification.DisabledResult()})
		return
	}
	state.Apply(Update{Verification: result})
}

// runScoringStage scores the candidate, consolidates the final rank and fans
// out the terminal persistence writes. Errors before the fan-out are fatal;
// fan-out write failures are observability events only.
func (o *Orchestrator) runScoringStage(ctx context.Context, state *State) {
	o.logger.Info("pipeline stage: scoring", zap.String("candidate_id", state.CandidateID))

	if state.Profile == nil {
		state.fail("scoring aborted: structured profile is missing")
		return
	}

	job, err := o.store.GetJob(ctx, state.JobID)
	if err != nil {
		state.fail(fmt.Sprintf("scoring failed: %v", err))
		return
	}

	breakdown := scoring.Score(state.Profile, job)

	fraudResult := state.Fraud
	if fraudResult == nil {
		fraudResult = &types.FraudAssessment{}
	}
	duplicateDetected := fraudResult.Details.DuplicateDetected

	tier, err := o.store.GetCandidatePriority(ctx, state.CandidateID)
	if err != nil {
		o.logger.Warn("priority lookup failed, applying no bonus",
			zap.String("candidate_id", state.CandidateID), zap.Error(err))
		tier = types.PriorityLow
	}

	rank := ranking.Consolidate(breakdown.OverallScore, fraudResult.FraudScore, tier, duplicateDetected)
	if duplicateDetected {
		o.logger.Warn("duplicate detected, rank hard-capped",
			zap.String("candidate_id", state.CandidateID),
			zap.Int("rank", rank))
	}

	o.fanOutPersistence(ctx, state.CandidateID, breakdown, rank, duplicateDetected)

	state.Apply(Update{
		Evaluation: breakdown,
		FinalRank:  &rank,
		Status:     StatusDone,
	})
}

// fanOutPersistence dispatches the three terminal writes concurrently and
// waits for all of them to settle. Each outcome is logged independently; no
// failure aborts or rolls back the others, and none of them fail the run.
func (o *Orchestrator) fanOutPersistence(ctx context.Context, candidateID string, breakdown *types.ScoreBreakdown, rank int, duplicateDetected bool) {
	writes := []struct {
		name string
		fn   func() error
	}{
		{"candidate_rank_update", func() error {
			return o.store.UpdateCandidateRank(ctx, candidateID, rank, "PROCESSED")
		}},
		{"score_breakdown_upsert", func() error {
			return o.store.UpsertScoreBreakdown(ctx, candidateID, types.ScoreRecord{
				ScoreBreakdown:      *breakdown,
				FinalRankScore:      rank,
				FraudPenaltyApplied: duplicateDetected,
			})
		}},
		{"audit_log_append", func() error {
			auditStatus := AuditStatusSuccess
			if duplicateDetected {
				auditStatus = AuditStatusFraudAlert
			}
			return o.store.AppendAuditLog(ctx, candidateID, AuditStepScoringComplete, auditStatus, map[string]any{
				"finalScore":  rank,
				"isDuplicate": duplicateDetected,
				"timestamp":   time.Now().UTC(),
			})
		}},
	}

	outcomes := make([]error, len(writes))
	var g errgroup.Group
	for i, write := range writes {
		g.Go(func() error {
			outcomes[i] = write.fn()
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range outcomes {
		if err != nil {
			o.logger.Error("persistence write failed",
				zap.String("candidate_id", candidateID),
				zap.String("write", writes[i].name),
				zap.Error(err))
		} else {
			o.logger.Debug("persistence write succeeded",
				zap.String("candidate_id", candidateID),
				zap.String("write", writes[i].name))
		}
	}
}
