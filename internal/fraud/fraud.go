// Package fraud provides the candidate fraud assessment engine.
package fraud

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Flags emitted by the rule-based heuristics.
const (
	FlagDuplicateApplication = "DUPLICATE_APPLICATION_DETECTED"
	FlagSystemError          = "SYSTEM_ERROR"
)

const (
	// duplicateBaseScore is the fixed fraud score assigned when a duplicate
	// application is found. Not additive with later heuristics.
	duplicateBaseScore = 85

	// timelineGapThresholdMonths is the largest employment gap tolerated
	// before a flag is raised.
	timelineGapThresholdMonths = 6.0

	// timelineGapPenalty is added to the fraud score per flagged gap.
	timelineGapPenalty = 10

	// maxSuspicionPayloadBytes bounds the profile JSON sent to the AI
	// suspicion analyzer.
	maxSuspicionPayloadBytes = 4000
)

// DuplicateFinder looks up other applications under the same job with the
// same normalized email. Existence check only.
type DuplicateFinder interface {
	CountDuplicateApplications(ctx context.Context, normalizedEmail, jobID, excludeCandidateID string) (int, error)
}

// SuspicionReport is the structured output of the AI suspicion analyzer.
type SuspicionReport struct {
	Score   int      `json:"ai_suspicion_score"`
	Reasons []string `json:"flag_reasons"`
}

// SuspicionAnalyzer scans a serialized profile for fabricated data. Failures
// are expected and degrade to a zero contribution.
type SuspicionAnalyzer interface {
	Analyze(ctx context.Context, profileJSON string) (*SuspicionReport, error)
}

// Engine combines duplicate detection, timeline heuristics and AI suspicion
// analysis into a single fraud assessment.
type Engine struct {
	duplicates DuplicateFinder
	suspicion  SuspicionAnalyzer // nil disables AI analysis
	logger     *zap.Logger
	now        func() time.Time
}

// NewEngine creates a fraud engine. suspicion may be nil, in which case the
// AI contribution is always zero.
func NewEngine(duplicates DuplicateFinder, suspicion SuspicionAnalyzer, logger *zap.Logger) *Engine {
	return &Engine{
		duplicates: duplicates,
		suspicion:  suspicion,
		logger:     logger,
		now:        time.Now,
	}
}

// Assess runs the fraud heuristics in strict order: duplicate detection
// first (its hit short-circuits the timeline heuristic so a duplicate always
// lands on the same reproducible floor score), then timeline gaps, then AI
// suspicion. Analysis failures never propagate to the caller; only a missing
// profile yields the SYSTEM_ERROR assessment.
func (e *Engine) Assess(ctx context.Context, profile *types.CandidateProfile, rawText, candidateID, jobID string) *types.FraudAssessment {
	if profile == nil {
		e.logger.Error("fraud assessment received no structured profile",
			zap.String("candidate_id", candidateID))
		return &types.FraudAssessment{
			FraudScore: 0,
			Flags:      []string{FlagSystemError},
			Details: types.FraudDetails{
				Timestamp: e.now().UTC(),
				Error:     "structured profile is missing",
			},
		}
	}

	var flags []string
	fraudScore := 0
	duplicateDetected := false

	// 1. Duplicate application check. Lookup errors degrade to "no
	// duplicates" so an unreachable store cannot fail the pipeline.
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email != "" && jobID != "" {
		count, err := e.duplicates.CountDuplicateApplications(ctx, email, jobID, candidateID)
		switch {
		case err != nil:
			e.logger.Warn("duplicate lookup failed, assuming none",
				zap.String("candidate_id", candidateID),
				zap.Error(err))
		case count > 0:
			duplicateDetected = true
			flags = append(flags, FlagDuplicateApplication)
			fraudScore = duplicateBaseScore
			e.logger.Info("duplicate application detected",
				zap.String("candidate_id", candidateID),
				zap.String("job_id", jobID),
				zap.Int("matches", count))
		}
	}

	// 2. Timeline gap heuristic, skipped entirely once a duplicate fired.
	if !duplicateDetected {
		gapFlags := e.detectTimelineGaps(profile.Experience)
		flags = append(flags, gapFlags...)
		fraudScore += len(gapFlags) * timelineGapPenalty
	}

	// 3. AI suspicion analysis, non-fatal on any failure.
	report := e.analyzeSuspicion(ctx, profile, candidateID)

	// 4. Consolidation.
	final := int(math.Round(float64(fraudScore + report.Score)))
	if final > 100 {
		final = 100
	}
	if final < 0 {
		final = 0
	}
	flags = append(flags, report.Reasons...)

	return &types.FraudAssessment{
		FraudScore: final,
		Flags:      flags,
		Details: types.FraudDetails{
			DuplicateDetected: duplicateDetected,
			AIScore:           report.Score,
			Timestamp:         e.now().UTC(),
		},
	}
}

// detectTimelineGaps flags gaps exceeding the threshold between consecutive
// roles, ordered by start date. Entries without a parseable start date are
// excluded from the scan.
func (e *Engine) detectTimelineGaps(experience []types.ExperienceEntry) []string {
	type datedEntry struct {
		start time.Time
		entry types.ExperienceEntry
	}

	dated := make([]datedEntry, 0, len(experience))
	for _, entry := range experience {
		if start, ok := parseDate(entry.StartDate); ok {
			dated = append(dated, datedEntry{start: start, entry: entry})
		}
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].start.Before(dated[j].start)
	})

	var flags []string
	for i := 0; i < len(dated)-1; i++ {
		end, ok := e.resolveEndDate(dated[i].entry.EndDate)
		if !ok {
			continue
		}

		gapMonths := dated[i+1].start.Sub(end).Hours() / 24 / 30
		if gapMonths > timelineGapThresholdMonths {
			flags = append(flags, fmt.Sprintf("TIMELINE_GAP_%d_MONTHS", int(math.Round(gapMonths))))
		}
	}
	return flags
}

// resolveEndDate parses an end date, mapping the "Present" sentinel to now.
func (e *Engine) resolveEndDate(endDate string) (time.Time, bool) {
	if strings.EqualFold(endDate, "Present") {
		return e.now(), true
	}
	return parseDate(endDate)
}

// analyzeSuspicion runs the AI analyzer against a byte-bounded profile
// payload. Every failure path returns the zero report.
func (e *Engine) analyzeSuspicion(ctx context.Context, profile *types.CandidateProfile, candidateID string) *SuspicionReport {
	zero := &SuspicionReport{Score: 0, Reasons: []string{}}

	if e.suspicion == nil {
		return zero
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		e.logger.Warn("AI fraud analysis bypassed: profile not serializable",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
		return zero
	}
	if len(payload) > maxSuspicionPayloadBytes {
		payload = payload[:maxSuspicionPayloadBytes]
	}

	report, err := e.suspicion.Analyze(ctx, string(payload))
	if err != nil || report == nil {
		e.logger.Warn("AI fraud analysis bypassed",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
		return zero
	}
	return report
}

// parseDate parses a date in "YYYY-MM" or "YYYY-MM-DD" format.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
