// Package verification provides the background verification collaborator
// contract and its default provider.
package verification

import (
	"context"
	"math/rand"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Provider performs identity/employment/education background checks.
// Implementations call out to external verification vendors; the pipeline
// only consumes the opaque result.
type Provider interface {
	Verify(ctx context.Context, profile *types.CandidateProfile) (*types.VerificationResult, error)
}

// DisabledResult is the verification outcome recorded when verification is
// switched off by configuration.
func DisabledResult() *types.VerificationResult {
	return &types.VerificationResult{
		Enabled:         false,
		ChecksAttempted: []string{},
		TrustScore:      0,
	}
}

// Trust score contributions per passing check.
const (
	employmentTrustWeight = 40
	educationTrustWeight  = 40
	identityTrustWeight   = 20
)

// StubProvider simulates a verification vendor. Employment and education
// checks pass 90% of the time; identity always passes. Stands in until a
// real vendor integration exists.
type StubProvider struct {
	chance func() float64
}

// NewStubProvider creates the simulated provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{chance: rand.Float64}
}

func (p *StubProvider) check() string {
	if p.chance() > 0.1 {
		return "MATCH"
	}
	return "NO_MATCH"
}

// Verify runs the simulated employment, education and identity checks.
func (p *StubProvider) Verify(_ context.Context, _ *types.CandidateProfile) (*types.VerificationResult, error) {
	employment := p.check()
	education := p.check()
	identity := "MATCH"

	score := 0
	if employment == "MATCH" {
		score += employmentTrustWeight
	}
	if education == "MATCH" {
		score += educationTrustWeight
	}
	if identity == "MATCH" {
		score += identityTrustWeight
	}

	return &types.VerificationResult{
		Enabled:         true,
		ChecksAttempted: []string{"employment", "education", "identity"},
		TrustSignals: []types.TrustSignal{
			{Type: "employment", Result: employment, Confidence: 0.85},
			{Type: "education", Result: education, Confidence: 0.90},
			{Type: "identity", Result: identity, Confidence: 0.99},
		},
		TrustScore: score,
	}, nil
}
