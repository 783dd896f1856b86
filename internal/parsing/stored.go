package parsing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ProfileStore is the persistence subset the parser reads from.
type ProfileStore interface {
	GetCandidateProfile(ctx context.Context, candidateID string) (string, *types.CandidateProfile, error)
}

// StoredProfileParser serves the pipeline's parse stage from the profile
// store, falling back to LLM extraction when only raw text was uploaded.
// A nil client disables the fallback.
type StoredProfileParser struct {
	store  ProfileStore
	client llm.Client
	logger *zap.Logger
}

// NewStoredProfileParser builds a parser over the given store.
func NewStoredProfileParser(store ProfileStore, client llm.Client, logger *zap.Logger) *StoredProfileParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoredProfileParser{store: store, client: client, logger: logger}
}

// Parse loads the candidate's stored profile, extracting one from raw text
// when no structured profile exists yet.
func (p *StoredProfileParser) Parse(ctx context.Context, candidateID, _ string) (*pipeline.ParseResult, error) {
	rawText, profile, err := p.store.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored profile: %w", err)
	}

	if profile != nil {
		return &pipeline.ParseResult{RawText: rawText, Profile: profile}, nil
	}

	if rawText == "" {
		return nil, &NoResumeDataError{CandidateID: candidateID}
	}
	if p.client == nil {
		return nil, fmt.Errorf("candidate %s has only raw text and no extractor is configured", candidateID)
	}

	p.logger.Info("extracting profile from raw resume text",
		zap.String("candidate_id", candidateID),
		zap.Int("text_bytes", len(rawText)))

	extracted, err := ExtractCandidateProfile(ctx, p.client, rawText)
	if err != nil {
		return nil, err
	}
	return &pipeline.ParseResult{RawText: rawText, Profile: extracted}, nil
}
