package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/types"
)

type fakeProfileStore struct {
	rawText string
	profile *types.CandidateProfile
	err     error
}

func (s *fakeProfileStore) GetCandidateProfile(_ context.Context, _ string) (string, *types.CandidateProfile, error) {
	return s.rawText, s.profile, s.err
}

type fakeLLMClient struct {
	response string
	err      error
	calls    int
}

func (c *fakeLLMClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *fakeLLMClient) Close() error { return nil }

func TestParse_ReturnsStoredProfile(t *testing.T) {
	store := &fakeProfileStore{
		rawText: "raw resume",
		profile: &types.CandidateProfile{Name: "Priya Sharma", Email: "priya@example.com"},
	}
	client := &fakeLLMClient{}
	p := NewStoredProfileParser(store, client, zap.NewNop())

	result, err := p.Parse(context.Background(), "CAND-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, "raw resume", result.RawText)
	assert.Equal(t, "Priya Sharma", result.Profile.Name)
	assert.Equal(t, 0, client.calls, "stored profile must not trigger extraction")
}

func TestParse_ExtractsFromRawText(t *testing.T) {
	store := &fakeProfileStore{rawText: "Priya Sharma priya@example.com golang"}
	client := &fakeLLMClient{response: "```json\n" + `{
		"name": " Priya Sharma ",
		"email": "PRIYA@Example.com",
		"skills": ["go", " ", "postgresql"],
		"experience": [],
		"education": []
	}` + "\n```"}
	p := NewStoredProfileParser(store, client, zap.NewNop())

	result, err := p.Parse(context.Background(), "CAND-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "Priya Sharma", result.Profile.Name)
	assert.Equal(t, "priya@example.com", result.Profile.Email)
	assert.Equal(t, []string{"go", "postgresql"}, result.Profile.Skills)
}

func TestParse_NoResumeData(t *testing.T) {
	p := NewStoredProfileParser(&fakeProfileStore{}, &fakeLLMClient{}, zap.NewNop())

	_, err := p.Parse(context.Background(), "CAND-1", "job-1")
	require.Error(t, err)

	var nde *NoResumeDataError
	require.True(t, errors.As(err, &nde))
	assert.Equal(t, "CAND-1", nde.CandidateID)
}

func TestParse_RawTextWithoutExtractor(t *testing.T) {
	p := NewStoredProfileParser(&fakeProfileStore{rawText: "some text"}, nil, zap.NewNop())

	_, err := p.Parse(context.Background(), "CAND-1", "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no extractor")
}

func TestParse_ExtractionFailure(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("quota exceeded")}
	p := NewStoredProfileParser(&fakeProfileStore{rawText: "some text"}, client, zap.NewNop())

	_, err := p.Parse(context.Background(), "CAND-1", "job-1")
	require.Error(t, err)

	var ace *APICallError
	assert.True(t, errors.As(err, &ace))
}

func TestParse_MalformedExtraction(t *testing.T) {
	client := &fakeLLMClient{response: "not json"}
	p := NewStoredProfileParser(&fakeProfileStore{rawText: "some text"}, client, zap.NewNop())

	_, err := p.Parse(context.Background(), "CAND-1", "job-1")
	require.Error(t, err)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParse_StoreError(t *testing.T) {
	p := NewStoredProfileParser(&fakeProfileStore{err: errors.New("connection reset")}, nil, zap.NewNop())

	_, err := p.Parse(context.Background(), "CAND-1", "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load stored profile")
}
