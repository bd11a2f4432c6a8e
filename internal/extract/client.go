// Package extract adapts LLM providers into the extraction and explanation
// capabilities the interpretation pipeline depends on. Everything returned
// from this package is untrusted input: candidate frames go through the
// schema check and rule engine before anything downstream believes them.
package extract

import (
	"context"
	"encoding/json"
)

// PromptVersion identifies the prompt revision embedded in responses so
// stored interpretations can be traced back to the wording that produced them.
const PromptVersion = "fcf-extract-v3"

// ExtractionInput is the raw material handed to a provider. Exactly one of
// ImageURL or Text is set.
type ExtractionInput struct {
	ImageURL string
	Text     string
	Hints    map[string]string
}

// FrameResponse contains a provider's candidate frame and parse confidence.
type FrameResponse struct {
	FrameJSON       json.RawMessage
	ParseConfidence float64
	Notes           []string
}

// ExplanationResponse contains a provider's generated explanation text.
type ExplanationResponse struct {
	Explanation string
	Warnings    []string
}

// Client defines the interface for LLM providers.
type Client interface {
	ExtractFrame(ctx context.Context, input ExtractionInput) (FrameResponse, error)
	GenerateExplanation(ctx context.Context, prompt string) (ExplanationResponse, error)
}

// Config holds configuration for the extraction clients.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  int // seconds
	CacheTTL    int // seconds
	RateLimit   int // requests per minute
	Temperature float64
	MaxTokens   int
}
