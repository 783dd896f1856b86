package ranking

import (
	"testing"

	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestConsolidate_Formula(t *testing.T) {
	// 80 - round(20*0.35) + 10 = 80 - 7 + 10 = 83
	rank := Consolidate(80, 20, types.PriorityHigh, false)
	assert.Equal(t, 83, rank)
}

func TestConsolidate_PriorityBonuses(t *testing.T) {
	assert.Equal(t, 60, Consolidate(50, 0, types.PriorityHigh, false))
	assert.Equal(t, 55, Consolidate(50, 0, types.PriorityMedium, false))
	assert.Equal(t, 50, Consolidate(50, 0, types.PriorityLow, false))
	assert.Equal(t, 50, Consolidate(50, 0, "", false))
}

func TestConsolidate_DuplicateHardCap(t *testing.T) {
	// The cap overrides the arithmetic for every combination of inputs.
	cases := []struct {
		overall, fraud int
		tier           types.PriorityTier
	}{
		{100, 0, types.PriorityHigh},
		{0, 100, types.PriorityLow},
		{85, 85, types.PriorityMedium},
	}
	for _, tc := range cases {
		assert.Equal(t, 15, Consolidate(tc.overall, tc.fraud, tc.tier, true))
	}
}

func TestConsolidate_Clamping(t *testing.T) {
	assert.Equal(t, 0, Consolidate(0, 100, types.PriorityLow, false))
	assert.Equal(t, 100, Consolidate(100, 0, types.PriorityHigh, false))
}

func TestConsolidate_Monotonicity(t *testing.T) {
	// Non-decreasing in overall score for fixed fraud score.
	prev := -1
	for overall := 0; overall <= 100; overall++ {
		rank := Consolidate(overall, 30, types.PriorityMedium, false)
		assert.GreaterOrEqual(t, rank, prev)
		assert.GreaterOrEqual(t, rank, 0)
		assert.LessOrEqual(t, rank, 100)
		prev = rank
	}

	// Non-increasing in fraud score for fixed overall score.
	prev = 101
	for fraud := 0; fraud <= 100; fraud++ {
		rank := Consolidate(70, fraud, types.PriorityLow, false)
		assert.LessOrEqual(t, rank, prev)
		assert.GreaterOrEqual(t, rank, 0)
		assert.LessOrEqual(t, rank, 100)
		prev = rank
	}
}

func TestFraudPenalty_Rounds(t *testing.T) {
	assert.Equal(t, 7, FraudPenalty(20))
	assert.Equal(t, 30, FraudPenalty(85))
	assert.Equal(t, 0, FraudPenalty(0))
	assert.Equal(t, 35, FraudPenalty(100))
}
