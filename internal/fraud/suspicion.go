package fraud

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
)

// GeminiAnalyzer implements SuspicionAnalyzer on top of the shared LLM client.
type GeminiAnalyzer struct {
	client llm.Client
}

// NewGeminiAnalyzer creates an analyzer backed by the given LLM client.
func NewGeminiAnalyzer(client llm.Client) *GeminiAnalyzer {
	return &GeminiAnalyzer{client: client}
}

// Analyze asks the model for a suspicion score in [0,50] plus flag reasons.
// The returned score is clamped into range; malformed responses are errors
// the engine degrades to a zero contribution.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, profileJSON string) (*SuspicionReport, error) {
	template := prompts.MustGet("fraud.json", "ai-suspicion")
	prompt := prompts.Format(template, map[string]string{"ProfileJSON": profileJSON})

	jsonResp, err := a.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)

	var report SuspicionReport
	if err := json.Unmarshal([]byte(jsonResp), &report); err != nil {
		return nil, fmt.Errorf("failed to parse suspicion response: %w (content: %s)", err, jsonResp)
	}

	if report.Score < 0 {
		report.Score = 0
	}
	if report.Score > 50 {
		report.Score = 50
	}
	if report.Reasons == nil {
		report.Reasons = []string{}
	}

	return &report, nil
}
