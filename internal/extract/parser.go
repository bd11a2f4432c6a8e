package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// cleanMarkdownWrapper strips a markdown code fence that models sometimes
// wrap around JSON output despite being told not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```json")
			content = strings.TrimPrefix(content, "```")
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	return strings.TrimSpace(content)
}

// parseFrameResponse parses a provider's extraction output. The candidate
// frame is kept as raw JSON; schema checking it is the orchestrator's job,
// not the adapter's. Confidence is clamped into [0,1] because models
// occasionally report 85 instead of 0.85.
func parseFrameResponse(content string) (FrameResponse, error) {
	content = cleanMarkdownWrapper(content)

	var resp struct {
		FCF             json.RawMessage `json:"fcf"`
		ParseConfidence float64         `json:"parseConfidence"`
		Notes           []string        `json:"notes"`
	}
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return FrameResponse{}, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	if len(resp.FCF) == 0 || string(resp.FCF) == "null" {
		return FrameResponse{}, fmt.Errorf("no candidate frame in extraction response")
	}

	return FrameResponse{
		FrameJSON:       resp.FCF,
		ParseConfidence: clampConfidence(resp.ParseConfidence),
		Notes:           resp.Notes,
	}, nil
}

// parseExplanationResponse parses a provider's explanation output.
func parseExplanationResponse(content string) (ExplanationResponse, error) {
	content = cleanMarkdownWrapper(content)

	var resp struct {
		Explanation string   `json:"explanation"`
		Warnings    []string `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return ExplanationResponse{}, fmt.Errorf("failed to parse explanation response: %w", err)
	}

	if resp.Explanation == "" {
		return ExplanationResponse{}, fmt.Errorf("no explanation text in response")
	}

	return ExplanationResponse{
		Explanation: resp.Explanation,
		Warnings:    resp.Warnings,
	}, nil
}

func clampConfidence(v float64) float64 {
	// Only clearly-percent values take the divide; a slight overshoot of 1
	// is treated as 1, not as a tiny fraction.
	if v > 2 && v <= 100 {
		v /= 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
