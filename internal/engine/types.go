// Package engine implements the interpretation pipeline that combines
// untrusted extraction output with the deterministic rule engine and
// tolerance calculators, and assembles a confidence-scored response.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/framecheck/framecheck/internal/calc"
	"github.com/framecheck/framecheck/internal/model"
	"github.com/framecheck/framecheck/internal/rules"
	"github.com/framecheck/framecheck/internal/service"
)

// Stage identifies the pipeline stage a failure occurred in, so callers can
// branch: retry extraction, fix the input, or accept a partial result.
type Stage string

// Pipeline stages.
const (
	StageExtraction  Stage = "extraction"
	StageSchema      Stage = "schema"
	StageValidation  Stage = "validation"
	StageCalculation Stage = "calculation"
	StageExplanation Stage = "explanation"
)

// Status classifies the overall outcome of a request.
type Status string

// Response statuses. A response is "ok" once rule validation produced a
// report, even when calculation or explanation were skipped or failed.
const (
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
)

// Confidence is the overall confidence tier of an interpretation.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// StageError carries the stage a pipeline failure belongs to.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// CalculationInput pairs a characteristic with the measured values needed
// by its calculator.
type CalculationInput struct {
	Characteristic      model.Characteristic     `json:"characteristic"`
	ActualSize          *float64                 `json:"actualSize,omitempty"`
	Size                *model.SizeDimension     `json:"size,omitempty"`
	ProfileDistribution calc.ProfileDistribution `json:"profileDistribution,omitempty"`
}

// Request is one interpretation request. Exactly one of FCF or
// (ImageURL | Text) must be present. When both a direct frame and raw input
// are supplied the direct frame wins and the raw input is ignored.
type Request struct {
	FCF                     json.RawMessage   `json:"fcf,omitempty"`
	ImageURL                string            `json:"imageUrl,omitempty"`
	Text                    string            `json:"text,omitempty"`
	Hints                   map[string]string `json:"hints,omitempty"`
	CalculationInput        *CalculationInput `json:"calculationInput,omitempty"`
	ParseConfidenceOverride *float64          `json:"parseConfidenceOverride,omitempty"`
	CorrelationID           string            `json:"correlationId,omitempty"`
	WantExplanation         bool              `json:"explain,omitempty"`
}

// CalcEnvelope labels a calculation result with its characteristic, the
// shape the response contract requires.
type CalcEnvelope struct {
	Characteristic model.Characteristic `json:"characteristic"`
	Result         *calc.Result         `json:"result"`
}

// Response is the assembled outcome of one interpretation request. On
// failure only Status, Stage, Message and Details are set; on success every
// stage that ran contributes its piece and absent pieces stay nil.
type Response struct {
	Status        Status                     `json:"status"`
	Stage         Stage                      `json:"stage,omitempty"`
	Message       string                     `json:"message,omitempty"`
	Details       string                     `json:"details,omitempty"`
	FCF           *model.FeatureControlFrame `json:"fcf,omitempty"`
	Validation    *rules.Report              `json:"validation,omitempty"`
	CalcResult    *CalcEnvelope              `json:"calcResult,omitempty"`
	CalcFailure   string                     `json:"calcFailure,omitempty"`
	Explanation   *service.Explanation       `json:"explanation,omitempty"`
	Confidence    Confidence                 `json:"confidence,omitempty"`
	PromptVersion string                     `json:"promptVersion,omitempty"`
	CorrelationID string                     `json:"correlationId,omitempty"`
}
