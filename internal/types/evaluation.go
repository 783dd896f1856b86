package types

import "time"

// ScoreBreakdown holds the weighted sub-scores and explainability bullets
// produced by the scoring engine. All scores are integers in [0,100].
type ScoreBreakdown struct {
	SkillMatchScore          int      `json:"skillMatchScore"`
	ExperienceRelevanceScore int      `json:"experienceRelevanceScore"`
	EducationFitScore        int      `json:"educationFitScore"`
	OverallScore             int      `json:"overallScore"`
	Explainability           []string `json:"explainability"`
}

// FraudAssessment is the consolidated output of the fraud engine.
type FraudAssessment struct {
	FraudScore int          `json:"fraudScore"`
	Flags      []string     `json:"flags"`
	Details    FraudDetails `json:"details"`
}

// FraudDetails carries the supporting evidence behind a fraud score.
type FraudDetails struct {
	DuplicateDetected bool      `json:"duplicateDetected"`
	AIScore           int       `json:"aiScore"`
	Timestamp         time.Time `json:"timestamp"`
	Error             string    `json:"error,omitempty"`
}

// HasFlag reports whether the assessment carries the given flag.
func (f *FraudAssessment) HasFlag(flag string) bool {
	for _, fl := range f.Flags {
		if fl == flag {
			return true
		}
	}
	return false
}

// ScoreRecord is the persisted score breakdown, including the consolidated
// rank, backing the detailed report view.
type ScoreRecord struct {
	ScoreBreakdown
	FinalRankScore      int  `json:"finalRankScore"`
	FraudPenaltyApplied bool `json:"fraudPenaltyApplied"`
}

// RankSummary is the persisted breakdown of a standalone re-rank computation.
type RankSummary struct {
	OverallScore      int       `json:"overallScore"`
	FraudScore        int       `json:"fraudScore"`
	FraudPenalty      int       `json:"fraudPenalty"`
	PriorityBonus     int       `json:"priorityBonus"`
	FinalRankScore    int       `json:"finalRankScore"`
	DuplicateDetected bool      `json:"duplicateDetected"`
	CalculatedAt      time.Time `json:"calculatedAt"`
}

// TrustSignal is a single verification check outcome.
type TrustSignal struct {
	Type       string  `json:"type"`
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
}

// VerificationResult is the opaque outcome of the background verification
// collaborator. When verification is disabled the zero-value semantics apply:
// no checks attempted, trust score 0.
type VerificationResult struct {
	Enabled         bool          `json:"enabled"`
	ChecksAttempted []string      `json:"checksAttempted"`
	TrustSignals    []TrustSignal `json:"trustSignals,omitempty"`
	TrustScore      int           `json:"trustScore"`
}
