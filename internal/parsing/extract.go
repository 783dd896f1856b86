// Package parsing turns stored resume data into the structured candidate
// profile the evaluation pipeline consumes, using LLM extraction when only
// raw text is available.
package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ExtractCandidateProfile extracts a structured profile from raw resume text
func ExtractCandidateProfile(ctx context.Context, client llm.Client, resumeText string) (*types.CandidateProfile, error) {
	template := prompts.MustGet("extraction.json", "extract-candidate-profile")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	responseText = llm.CleanJSONBlock(responseText)

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(responseText), &profile); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	postProcessProfile(&profile)
	return &profile, nil
}

// postProcessProfile normalizes extracted fields in place.
func postProcessProfile(profile *types.CandidateProfile) {
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	profile.Name = strings.TrimSpace(profile.Name)

	skills := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		s = strings.TrimSpace(s)
		if s != "" {
			skills = append(skills, s)
		}
	}
	profile.Skills = skills
}
