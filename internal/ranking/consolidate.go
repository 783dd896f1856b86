// Package ranking provides rank consolidation for evaluated candidates.
package ranking

import (
	"math"

	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	// fraudPenaltyWeight scales the fraud score before it is subtracted
	// from the overall score.
	fraudPenaltyWeight = 0.35

	// duplicateRankCap replaces the computed rank whenever a duplicate
	// application was detected. It is an override, never averaged in.
	duplicateRankCap = 15

	highPriorityBonus   = 10
	mediumPriorityBonus = 5
)

// PriorityBonus returns the fixed ranking bonus for a priority tier.
func PriorityBonus(tier types.PriorityTier) int {
	switch tier {
	case types.PriorityHigh:
		return highPriorityBonus
	case types.PriorityMedium:
		return mediumPriorityBonus
	default:
		return 0
	}
}

// FraudPenalty returns the rounded penalty deducted for a fraud score.
func FraudPenalty(fraudScore int) int {
	return int(math.Round(float64(fraudScore) * fraudPenaltyWeight))
}

// Consolidate combines the overall score, fraud score and priority tier into
// the final rank: overall - round(fraud*0.35) + priorityBonus, clamped to
// [0,100]. A detected duplicate application hard-caps the rank at 15
// regardless of the arithmetic. Every rank computation in the system goes
// through this function so the two entry points (pipeline scoring stage and
// standalone re-ranking) cannot drift apart.
func Consolidate(overallScore, fraudScore int, tier types.PriorityTier, duplicateDetected bool) int {
	rank := overallScore - FraudPenalty(fraudScore) + PriorityBonus(tier)

	if duplicateDetected {
		rank = duplicateRankCap
	}

	if rank < 0 {
		rank = 0
	}
	if rank > 100 {
		rank = 100
	}
	return rank
}
