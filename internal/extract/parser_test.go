package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"fcf": {}}`,
			expected: `{"fcf": {}}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"fcf\": {}}\n```",
			expected: `{"fcf": {}}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"fcf\": {}}\n```",
			expected: `{"fcf": {}}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{\"fcf\": {}}\n```\n  ",
			expected: `{"fcf": {}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanMarkdownWrapper(tt.input))
		})
	}
}

func TestParseFrameResponse(t *testing.T) {
	t.Run("complete response", func(t *testing.T) {
		resp, err := parseFrameResponse(`{
			"fcf": {"characteristic": "position", "tolerance": {"value": 0.1}},
			"parseConfidence": 0.85,
			"notes": ["datum C partially legible"]
		}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"characteristic": "position", "tolerance": {"value": 0.1}}`, string(resp.FrameJSON))
		assert.InDelta(t, 0.85, resp.ParseConfidence, 1e-9)
		assert.Equal(t, []string{"datum C partially legible"}, resp.Notes)
	})

	t.Run("fenced response", func(t *testing.T) {
		resp, err := parseFrameResponse("```json\n{\"fcf\": {\"characteristic\": \"flatness\"}, \"parseConfidence\": 0.9}\n```")
		require.NoError(t, err)
		assert.InDelta(t, 0.9, resp.ParseConfidence, 1e-9)
	})

	t.Run("percent-style confidence clamped", func(t *testing.T) {
		resp, err := parseFrameResponse(`{"fcf": {}, "parseConfidence": 85}`)
		require.NoError(t, err)
		assert.InDelta(t, 0.85, resp.ParseConfidence, 1e-9)
	})

	t.Run("missing frame rejected", func(t *testing.T) {
		_, err := parseFrameResponse(`{"parseConfidence": 0.9}`)
		assert.Error(t, err)
	})

	t.Run("null frame rejected", func(t *testing.T) {
		_, err := parseFrameResponse(`{"fcf": null, "parseConfidence": 0.9}`)
		assert.Error(t, err)
	})

	t.Run("non-JSON rejected", func(t *testing.T) {
		_, err := parseFrameResponse("I could not read the drawing")
		assert.Error(t, err)
	})
}

func TestParseExplanationResponse(t *testing.T) {
	t.Run("complete response", func(t *testing.T) {
		resp, err := parseExplanationResponse(`{
			"explanation": "the axis must lie within a 0.1 cylinder",
			"warnings": ["bonus applies only at MMC"]
		}`)
		require.NoError(t, err)
		assert.Equal(t, "the axis must lie within a 0.1 cylinder", resp.Explanation)
		assert.Len(t, resp.Warnings, 1)
	})

	t.Run("empty explanation rejected", func(t *testing.T) {
		_, err := parseExplanationResponse(`{"explanation": ""}`)
		assert.Error(t, err)
	})
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0, 0},
		{1, 1},
		{-0.2, 0},
		{1.2, 1},
		{2, 1},
		{85, 0.85},
		{100, 1},
		{150, 1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, clampConfidence(tt.input), 1e-9, "input %v", tt.input)
	}
}
