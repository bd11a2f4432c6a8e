// Package service defines the interfaces for the collaborators around the
// interpretation core: extraction, explanation, and persistence.
package service

import (
	"context"
	"encoding/json"
	"time"
)

// ExtractionResult is the untrusted output of the extraction capability: a
// candidate frame payload plus the extractor's own confidence in the parse.
// The payload is raw JSON on purpose; it has not passed the schema check
// yet and must not be treated as a valid frame.
type ExtractionResult struct {
	FrameJSON       json.RawMessage `json:"fcf"`
	ParseConfidence float64         `json:"parseConfidence"`
	Notes           []string        `json:"notes,omitempty"`
}

// Extractor converts an image or free text into a candidate frame. It may
// fail entirely; that failure means "no candidate could be formed", which
// callers must keep distinct from "the candidate is non-compliant".
type Extractor interface {
	ExtractFromImage(ctx context.Context, imageURL string, hints map[string]string) (*ExtractionResult, error)
	ExtractFromText(ctx context.Context, text string, hints map[string]string) (*ExtractionResult, error)
}

// Explanation is a natural-language rendering of an interpretation.
type Explanation struct {
	Explanation string   `json:"explanation"`
	Warnings    []string `json:"warnings,omitempty"`
}

// ExplanationRequest carries the material the explainer narrates.
type ExplanationRequest struct {
	FrameJSON      json.RawMessage `json:"fcf"`
	ValidationJSON json.RawMessage `json:"validation,omitempty"`
	CalcJSON       json.RawMessage `json:"calcResult,omitempty"`
}

// Explainer produces a best-effort natural-language explanation. Failures
// are always recoverable; callers omit the explanation and keep the rest.
type Explainer interface {
	Explain(ctx context.Context, req ExplanationRequest) (*Explanation, error)
}

// InterpretationRecord is the serializable projection of a finished
// interpretation handed to the persistence collaborator. The core never
// reads these back; only the surrounding tooling does.
type InterpretationRecord struct {
	CreatedAt      time.Time       `json:"createdAt"`
	ID             string          `json:"id"`
	CorrelationID  string          `json:"correlationId,omitempty"`
	Characteristic string          `json:"characteristic,omitempty"`
	Status         string          `json:"status"`
	Confidence     string          `json:"confidence,omitempty"`
	Payload        json.RawMessage `json:"payload"`
}

// RecordFilter defines filtering and paging for history queries.
type RecordFilter struct {
	Characteristic string
	Status         string
	Limit          int
	Offset         int
}

// Storage defines the contract for the interpretation history store.
type Storage interface {
	SaveInterpretation(ctx context.Context, rec *InterpretationRecord) error
	GetInterpretation(ctx context.Context, id string) (*InterpretationRecord, error)
	ListInterpretations(ctx context.Context, filter RecordFilter) ([]InterpretationRecord, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for external calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
