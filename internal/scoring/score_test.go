package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkill(t *testing.T) {
	assert.Equal(t, "nodejs", NormalizeSkill("Node.js"))
	assert.Equal(t, "c", NormalizeSkill("C++"))
	assert.Equal(t, "postgresql", NormalizeSkill("  PostgreSQL  "))
	assert.Equal(t, "", NormalizeSkill("+++"))
}

func TestScore_SkillMatchWithBonusCap(t *testing.T) {
	profile := &types.CandidateProfile{
		Skills: []string{"Python", "SQL", "Docker"},
		Education: []types.EducationEntry{
			{Degree: "B.Tech", Institution: "IIT"},
		},
	}
	job := &types.JobRequirement{
		MustHaveSkills:   []string{"python", "sql"},
		GoodToHaveSkills: []string{"docker"},
		MinExpYears:      0,
	}

	breakdown := Score(profile, job)

	assert.Equal(t, 100, breakdown.SkillMatchScore, "bonus must not push the score past 100")
	assert.Contains(t, breakdown.Explainability, "Matched 2 out of 2 mandatory skills.")
	assert.Contains(t, breakdown.Explainability, "Awarded bonus for 1 preferred technical skills.")
}

func TestScore_EmptyMustHaveNeverPenalizes(t *testing.T) {
	profile := &types.CandidateProfile{Skills: []string{"Basket Weaving"}}
	job := &types.JobRequirement{MinExpYears: 0}

	breakdown := Score(profile, job)
	assert.Equal(t, 100, breakdown.SkillMatchScore)
}

func TestScore_MissingSkillsBullet(t *testing.T) {
	profile := &types.CandidateProfile{Skills: []string{"Go"}}
	job := &types.JobRequirement{
		MustHaveSkills: []string{"Go", "Kubernetes", "Terraform"},
	}

	breakdown := Score(profile, job)

	assert.Equal(t, 33, breakdown.SkillMatchScore)
	require.GreaterOrEqual(t, len(breakdown.Explainability), 2)
	assert.Equal(t, "Matched 1 out of 3 mandatory skills.", breakdown.Explainability[0])
	assert.Equal(t, "Missing critical domain skills: Kubernetes, Terraform.", breakdown.Explainability[1])
}

func TestScoreExperience_BelowMinimum(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	profile := &types.CandidateProfile{
		Experience: []types.ExperienceEntry{
			{StartDate: "2022-01", EndDate: "2024-07"},
		},
	}
	job := &types.JobRequirement{MinExpYears: 5}

	score, bullet := scoreExperience(profile, job, now)

	assert.InDelta(t, 50, score, 0.5, "2.5 accumulated years against 5 required")
	assert.Contains(t, bullet, "below the preferred 5 years")
}

func TestScoreExperience_PresentSentinelAndUnparseableEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := &types.CandidateProfile{
		Experience: []types.ExperienceEntry{
			{StartDate: "2022-01", EndDate: "present"},
			{StartDate: "garbage", EndDate: "2023-01"},
			{StartDate: "2023-06", EndDate: "2023-01"}, // negative duration ignored
		},
	}
	job := &types.JobRequirement{MinExpYears: 1}

	score, _ := scoreExperience(profile, job, now)
	assert.Equal(t, 100.0, score)
}

func TestScoreExperience_NoEntries(t *testing.T) {
	profile := &types.CandidateProfile{}
	now := time.Now()

	score, _ := scoreExperience(profile, &types.JobRequirement{MinExpYears: 3}, now)
	assert.Equal(t, 0.0, score)

	score, _ = scoreExperience(profile, &types.JobRequirement{MinExpYears: 0}, now)
	assert.Equal(t, 100.0, score)
}

func TestScoreEducation(t *testing.T) {
	withDegree := &types.CandidateProfile{
		Education: []types.EducationEntry{{Degree: "Master of Science", Institution: "MIT"}},
	}
	score, bullet := scoreEducation(withDegree)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, "Academic background aligns with required qualifications.", bullet)

	withoutDegree := &types.CandidateProfile{
		Education: []types.EducationEntry{{Institution: "School of Hard Knocks"}},
	}
	score, bullet = scoreEducation(withoutDegree)
	assert.Equal(t, 50.0, score)
	assert.Equal(t, "Alternative academic background detected; applying partial credit.", bullet)
}

func TestScore_WeightedAggregation(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := &types.CandidateProfile{
		Skills: []string{"Go"},
		Experience: []types.ExperienceEntry{
			{StartDate: "2014-01", EndDate: "2024-01"},
		},
		Education: []types.EducationEntry{{Degree: "PhD"}},
	}
	job := &types.JobRequirement{
		MustHaveSkills: []string{"Go", "Rust"},
		MinExpYears:    5,
	}

	breakdown := scoreAt(profile, job, now)

	assert.Equal(t, 50, breakdown.SkillMatchScore)
	assert.Equal(t, 100, breakdown.ExperienceRelevanceScore)
	assert.Equal(t, 100, breakdown.EducationFitScore)
	// 50*0.50 + 100*0.35 + 100*0.15 = 75
	assert.Equal(t, 75, breakdown.OverallScore)
}

func TestScore_OverallReproducibleFromReportedSubScores(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := &types.CandidateProfile{
		Skills: []string{"Go"},
		Experience: []types.ExperienceEntry{
			{StartDate: "2010-01", EndDate: "2024-01"},
		},
		Education: []types.EducationEntry{{Degree: "PhD"}},
	}
	job := &types.JobRequirement{
		MustHaveSkills: []string{"Go", "Rust", "Kafka", "Terraform", "Redis", "Kubernetes"},
		MinExpYears:    5,
	}

	breakdown := scoreAt(profile, job, now)

	// 1 of 6 mandatory skills: 16.667 reported as 17, and the rounded value
	// feeds the weighting: round(17*0.50 + 100*0.35 + 100*0.15) = 59.
	assert.Equal(t, 17, breakdown.SkillMatchScore)
	assert.Equal(t, 100, breakdown.ExperienceRelevanceScore)
	assert.Equal(t, 100, breakdown.EducationFitScore)
	assert.Equal(t, 59, breakdown.OverallScore)

	recomputed := int(math.Round(
		float64(breakdown.SkillMatchScore)*0.50 +
			float64(breakdown.ExperienceRelevanceScore)*0.35 +
			float64(breakdown.EducationFitScore)*0.15,
	))
	assert.Equal(t, recomputed, breakdown.OverallScore)
}

func TestScore_Idempotent(t *testing.T) {
	profile := &types.CandidateProfile{
		Skills: []string{"Python", "SQL"},
		Experience: []types.ExperienceEntry{
			{StartDate: "2020-01", EndDate: "2023-01"},
		},
		Education: []types.EducationEntry{{Degree: "B.Sc"}},
	}
	job := &types.JobRequirement{
		MustHaveSkills: []string{"python"},
		MinExpYears:    2,
	}
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	first := scoreAt(profile, job, now)
	second := scoreAt(profile, job, now)
	assert.Equal(t, first, second)
}

func TestScore_BulletOrderIsStable(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := &types.CandidateProfile{
		Skills: []string{"Go", "Docker"},
		Experience: []types.ExperienceEntry{
			{StartDate: "2021-01", EndDate: "2023-01"},
		},
	}
	job := &types.JobRequirement{
		MustHaveSkills:   []string{"Go", "Rust"},
		GoodToHaveSkills: []string{"Docker"},
		MinExpYears:      5,
	}

	breakdown := scoreAt(profile, job, now)

	require.Len(t, breakdown.Explainability, 5)
	assert.Equal(t, "Matched 1 out of 2 mandatory skills.", breakdown.Explainability[0])
	assert.Equal(t, "Missing critical domain skills: Rust.", breakdown.Explainability[1])
	assert.Equal(t, "Awarded bonus for 1 preferred technical skills.", breakdown.Explainability[2])
	assert.Contains(t, breakdown.Explainability[3], "Tenure of")
	assert.Equal(t, "Alternative academic background detected; applying partial credit.", breakdown.Explainability[4])
}
