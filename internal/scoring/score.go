// Package scoring provides the weighted candidate scoring engine.
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Weights for the score components.
const (
	skillMatchWeight          = 0.50
	experienceRelevanceWeight = 0.35
	educationFitWeight        = 0.15
)

// goodToHaveBonus is added to the skill score when any preferred skill matches.
const goodToHaveBonus = 15

// degreeKeywords denote recognized credential levels in serialized education text.
var degreeKeywords = []string{
	"bachelor", "master", "b.tech", "b.sc", "m.sc", "phd", "degree", "diploma", "mca", "bca",
}

// NormalizeSkill lowercases a skill name and strips all non-alphanumeric
// characters so that formatting differences ("Node.js" vs "nodejs") do not
// break matching.
func NormalizeSkill(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Score computes the weighted score breakdown for a candidate against a job
// requirement. It is deterministic for a fixed (profile, job) pair apart from
// tenure computation, which resolves "Present" end dates against the current
// time. Explainability bullets are generated in a fixed order: skills, then
// experience, then education.
func Score(profile *types.CandidateProfile, job *types.JobRequirement) *types.ScoreBreakdown {
	return scoreAt(profile, job, time.Now())
}

// scoreAt is Score with an explicit reference time for tenure computation.
func scoreAt(profile *types.CandidateProfile, job *types.JobRequirement, now time.Time) *types.ScoreBreakdown {
	var explainability []string

	skillScore, skillBullets := scoreSkills(profile, job)
	explainability = append(explainability, skillBullets...)

	expScore, expBullet := scoreExperience(profile, job, now)
	explainability = append(explainability, expBullet)

	eduScore, eduBullet := scoreEducation(profile)
	explainability = append(explainability, eduBullet)

	// Sub-scores are rounded before weighting so the overall score is
	// reproducible from the reported breakdown.
	skill := math.Round(skillScore)
	exp := math.Round(expScore)
	edu := math.Round(eduScore)

	overall := int(math.Round(
		skill*skillMatchWeight +
			exp*experienceRelevanceWeight +
			edu*educationFitWeight,
	))

	return &types.ScoreBreakdown{
		SkillMatchScore:          int(skill),
		ExperienceRelevanceScore: int(exp),
		EducationFitScore:        int(edu),
		OverallScore:             overall,
		Explainability:           explainability,
	}
}

// scoreSkills computes the mandatory-skill match ratio plus the preferred-skill
// bonus. An empty must-have list never penalizes the candidate.
func scoreSkills(profile *types.CandidateProfile, job *types.JobRequirement) (float64, []string) {
	var bullets []string

	candidateSkills := make(map[string]bool, len(profile.Skills))
	for _, skill := range profile.Skills {
		if normalized := NormalizeSkill(skill); normalized != "" {
			candidateSkills[normalized] = true
		}
	}

	score := 100.0
	if len(job.MustHaveSkills) > 0 {
		var matched int
		var missing []string
		for _, skill := range job.MustHaveSkills {
			if candidateSkills[NormalizeSkill(skill)] {
				matched++
			} else {
				missing = append(missing, skill)
			}
		}

		score = float64(matched) / float64(len(job.MustHaveSkills)) * 100
		bullets = append(bullets, fmt.Sprintf("Matched %d out of %d mandatory skills.", matched, len(job.MustHaveSkills)))

		if len(missing) > 0 {
			bullets = append(bullets, fmt.Sprintf("Missing critical domain skills: %s.", strings.Join(missing, ", ")))
		}
	}

	matchedBonus := 0
	for _, skill := range job.GoodToHaveSkills {
		if candidateSkills[NormalizeSkill(skill)] {
			matchedBonus++
		}
	}
	if matchedBonus > 0 {
		score = math.Min(100, score+goodToHaveBonus)
		bullets = append(bullets, fmt.Sprintf("Awarded bonus for %d preferred technical skills.", matchedBonus))
	}

	return score, bullets
}

// scoreExperience accumulates tenure across all parseable experience entries
// and scores it against the job's minimum. Entries with a non-positive
// computed duration are ignored.
func scoreExperience(profile *types.CandidateProfile, job *types.JobRequirement, now time.Time) (float64, string) {
	totalYears := 0.0
	for _, role := range profile.Experience {
		if role.StartDate == "" {
			continue
		}
		start, ok := parseDate(role.StartDate)
		if !ok {
			continue
		}

		end := now
		if role.EndDate != "" && !strings.EqualFold(role.EndDate, "Present") {
			end, ok = parseDate(role.EndDate)
			if !ok {
				continue
			}
		}

		years := end.Sub(start).Hours() / (24 * 365.25)
		if years > 0 {
			totalYears += years
		}
	}

	if totalYears >= job.MinExpYears {
		return 100, fmt.Sprintf("Professional tenure (%.1f years) satisfies role seniority.", totalYears)
	}

	score := 100.0
	if job.MinExpYears > 0 {
		score = totalYears / job.MinExpYears * 100
	}
	return score, fmt.Sprintf("Tenure of %.1f years is currently below the preferred %g years.", totalYears, job.MinExpYears)
}

// scoreEducation searches the serialized education list for recognized
// credential keywords. Alternative backgrounds receive partial credit.
func scoreEducation(profile *types.CandidateProfile) (float64, string) {
	serialized, err := json.Marshal(profile.Education)
	if err != nil {
		serialized = []byte{}
	}
	educationText := strings.ToLower(string(serialized))

	for _, keyword := range degreeKeywords {
		if strings.Contains(educationText, keyword) {
			return 100, "Academic background aligns with required qualifications."
		}
	}
	return 50, "Alternative academic background detected; applying partial credit."
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
