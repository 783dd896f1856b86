package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	ClearCache()

	tests := []struct {
		filename string
		key      string
		contains string
	}{
		{"fraud.json", "ai-suspicion", "HR Security Auditor"},
		{"extraction.json", "extract-candidate-profile", "resume parsing system"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("fraud.json", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	require.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("fraud.json", "nope")
	})
}

func TestFormat(t *testing.T) {
	out := Format("score {{.Payload}} for {{.Name}}", map[string]string{
		"Payload": "{}",
		"Name":    "ai-suspicion",
	})
	assert.Equal(t, "score {} for ai-suspicion", out)
}

func TestFormat_FillsTemplatePlaceholders(t *testing.T) {
	template := MustGet("fraud.json", "ai-suspicion")
	out := Format(template, map[string]string{"ProfileJSON": `{"name":"x"}`})
	assert.True(t, strings.HasSuffix(out, `{"name":"x"}`))
	assert.NotContains(t, out, "{{.ProfileJSON}}")
}
