package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFinder struct {
	count int
	err   error
	calls int
}

func (f *fakeFinder) CountDuplicateApplications(_ context.Context, _, _, _ string) (int, error) {
	f.calls++
	return f.count, f.err
}

type fakeAnalyzer struct {
	report *SuspicionReport
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (*SuspicionReport, error) {
	f.calls++
	return f.report, f.err
}

func newTestEngine(finder DuplicateFinder, analyzer SuspicionAnalyzer, now time.Time) *Engine {
	e := NewEngine(finder, analyzer, zap.NewNop())
	e.now = func() time.Time { return now }
	return e
}

func TestAssess_DuplicateShortCircuitsTimelineHeuristic(t *testing.T) {
	finder := &fakeFinder{count: 1}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newTestEngine(finder, nil, now)

	// Experience with a huge gap that would normally add flags.
	profile := &types.CandidateProfile{
		Email: "  Jane.Doe@Example.COM ",
		Experience: []types.ExperienceEntry{
			{StartDate: "2015-01", EndDate: "2016-01"},
			{StartDate: "2020-01", EndDate: "2021-01"},
		},
	}

	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")

	assert.Equal(t, 85, result.FraudScore)
	assert.Equal(t, []string{FlagDuplicateApplication}, result.Flags)
	assert.True(t, result.Details.DuplicateDetected)
}

func TestAssess_TimelineGapFlag(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newTestEngine(&fakeFinder{}, nil, now)

	profile := &types.CandidateProfile{
		Email: "jane@example.com",
		Experience: []types.ExperienceEntry{
			{StartDate: "2020-01", EndDate: "2021-01"},
			{StartDate: "2021-09", EndDate: "Present"},
		},
	}

	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")

	// Jan 2021 -> Sep 2021 is an 8-month gap.
	assert.Contains(t, result.Flags, "TIMELINE_GAP_8_MONTHS")
	assert.Equal(t, 10, result.FraudScore)
	assert.False(t, result.Details.DuplicateDetected)
}

func TestAssess_MultipleGapsAccumulate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newTestEngine(&fakeFinder{}, nil, now)

	profile := &types.CandidateProfile{
		Email: "jane@example.com",
		Experience: []types.ExperienceEntry{
			// Deliberately out of order; the engine sorts by start date.
			{StartDate: "2020-01", EndDate: "2020-06"},
			{StartDate: "2015-01", EndDate: "2016-01"},
			{StartDate: "2021-06", EndDate: "Present"},
		},
	}

	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")

	assert.Len(t, result.Flags, 2)
	assert.Equal(t, 20, result.FraudScore)
}

func TestAssess_GapWithinThresholdNotFlagged(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newTestEngine(&fakeFinder{}, nil, now)

	profile := &types.CandidateProfile{
		Email: "jane@example.com",
		Experience: []types.ExperienceEntry{
			{StartDate: "2020-01", EndDate: "2021-01"},
			{StartDate: "2021-06", EndDate: "Present"},
		},
	}

	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")
	assert.Empty(t, result.Flags)
	assert.Equal(t, 0, result.FraudScore)
}

func TestAssess_AISuspicionContribution(t *testing.T) {
	analyzer := &fakeAnalyzer{report: &SuspicionReport{
		Score:   30,
		Reasons: []string{"Placeholder company name detected"},
	}}
	engine := newTestEngine(&fakeFinder{}, analyzer, time.Now())

	profile := &types.CandidateProfile{Email: "jane@example.com"}
	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")

	assert.Equal(t, 30, result.FraudScore)
	assert.Equal(t, 30, result.Details.AIScore)
	assert.Contains(t, result.Flags, "Placeholder company name detected")
	assert.Equal(t, 1, analyzer.calls)
}

func TestAssess_AIFailureDegradesToZero(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("model overloaded")}
	engine := newTestEngine(&fakeFinder{}, analyzer, time.Now())

	profile := &types.CandidateProfile{Email: "jane@example.com"}
	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")

	assert.Equal(t, 0, result.FraudScore)
	assert.Empty(t, result.Flags)
}

func TestAssess_ScoreClampedAt100(t *testing.T) {
	finder := &fakeFinder{count: 3}
	analyzer := &fakeAnalyzer{report: &SuspicionReport{Score: 50, Reasons: []string{}}}
	engine := newTestEngine(finder, analyzer, time.Now())

	profile := &types.CandidateProfile{Email: "jane@example.com"}
	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")

	// 85 (duplicate base) + 50 (AI) clamps to 100.
	assert.Equal(t, 100, result.FraudScore)
}

func TestAssess_SkipsLookupWithoutEmailOrJob(t *testing.T) {
	finder := &fakeFinder{count: 1}
	engine := newTestEngine(finder, nil, time.Now())

	result := engine.Assess(context.Background(), &types.CandidateProfile{}, "", "CAND-1", "JOB-1")
	assert.Equal(t, 0, finder.calls)
	assert.False(t, result.Details.DuplicateDetected)

	result = engine.Assess(context.Background(), &types.CandidateProfile{Email: "a@b.c"}, "", "CAND-1", "")
	assert.Equal(t, 0, finder.calls)
	assert.False(t, result.Details.DuplicateDetected)
}

func TestAssess_LookupErrorDegradesToNoDuplicate(t *testing.T) {
	finder := &fakeFinder{err: errors.New("connection refused")}
	engine := newTestEngine(finder, nil, time.Now())

	profile := &types.CandidateProfile{Email: "jane@example.com"}
	result := engine.Assess(context.Background(), profile, "", "CAND-1", "JOB-1")

	assert.False(t, result.Details.DuplicateDetected)
	assert.Equal(t, 0, result.FraudScore)
}

func TestAssess_NilProfileIsSystemError(t *testing.T) {
	engine := newTestEngine(&fakeFinder{}, nil, time.Now())

	result := engine.Assess(context.Background(), nil, "", "CAND-1", "JOB-1")

	require.NotNil(t, result)
	assert.Equal(t, 0, result.FraudScore)
	assert.Equal(t, []string{FlagSystemError}, result.Flags)
	assert.NotEmpty(t, result.Details.Error)
}
