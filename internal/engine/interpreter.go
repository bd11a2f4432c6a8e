package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/framecheck/framecheck/internal/calc"
	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/extract"
	"github.com/framecheck/framecheck/internal/model"
	"github.com/framecheck/framecheck/internal/rules"
	"github.com/framecheck/framecheck/internal/service"
)

// Config holds configuration options for the interpreter.
type Config struct {
	LowConfidenceThreshold float64
	ExtractTimeout         time.Duration
	ExplainTimeout         time.Duration
}

// DefaultConfig returns the default interpreter configuration.
func DefaultConfig() Config {
	return Config{
		LowConfidenceThreshold: DefaultLowConfidenceThreshold,
		ExtractTimeout:         90 * time.Second,
		ExplainTimeout:         30 * time.Second,
	}
}

// Interpreter runs the interpretation pipeline. The extractor and explainer
// are optional collaborators: an interpreter without an extractor can still
// serve direct-frame requests, and one without an explainer simply never
// attaches explanations.
type Interpreter struct {
	extractor service.Extractor
	explainer service.Explainer
	logger    *slog.Logger
	cfg       Config
}

// New creates an interpreter with the default configuration.
func New(extractor service.Extractor, explainer service.Explainer, logger *slog.Logger) *Interpreter {
	return NewWithConfig(extractor, explainer, logger, DefaultConfig())
}

// NewWithConfig creates an interpreter with custom configuration.
func NewWithConfig(extractor service.Extractor, explainer service.Explainer, logger *slog.Logger, cfg Config) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LowConfidenceThreshold <= 0 {
		cfg.LowConfidenceThreshold = DefaultLowConfidenceThreshold
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 90 * time.Second
	}
	if cfg.ExplainTimeout <= 0 {
		cfg.ExplainTimeout = 30 * time.Second
	}
	return &Interpreter{
		extractor: extractor,
		explainer: explainer,
		logger:    logger,
		cfg:       cfg,
	}
}

// Interpret runs the staged pipeline: acquire, schema check, rule
// validation, calculation, explanation. The caller always receives a
// response object; terminal failures in the acquire and schema stages are
// encoded in it with the failing stage tagged, and everything after the
// validation stage degrades to absent fields instead of failing the request.
func (i *Interpreter) Interpret(ctx context.Context, req Request) *Response {
	logger := i.logger
	if req.CorrelationID != "" {
		logger = logger.With("correlation_id", req.CorrelationID)
	}

	// Acquire.
	frameJSON, parseConfidence, stageErr := i.acquire(ctx, req, logger)
	if stageErr != nil {
		logger.Error("acquire stage failed", "stage", stageErr.Stage, "error", stageErr.Err)
		return failureResponse(req, stageErr)
	}

	// An explicit override from the caller beats the extractor's own score.
	if req.ParseConfidenceOverride != nil {
		parseConfidence = req.ParseConfidenceOverride
	}

	// Schema check. Terminal: no rules or calculation run on a frame that
	// is not structurally valid.
	frame, err := model.ParseFrame(frameJSON)
	if err != nil {
		logger.Warn("schema stage rejected frame", "error", err)
		return failureResponse(req, &StageError{Stage: StageSchema, Err: err})
	}
	i.stampProvenance(frame, req)

	// Rule validation. Always completes; a report full of errors is still
	// a successful validation stage.
	report := rules.Validate(frame)
	logger.Info("validation completed",
		"valid", report.Valid,
		"errors", report.Summary.ErrorCount,
		"warnings", report.Summary.WarningCount)

	resp := &Response{
		Status:        StatusOK,
		FCF:           frame,
		Validation:    &report,
		CorrelationID: req.CorrelationID,
	}

	// Calculation. Runs only when the caller supplied an input matching the
	// frame's characteristic; its failure is reported alongside the
	// validation results, never instead of them.
	i.runCalculation(frame, req, resp, logger)

	// Explanation. Best-effort decoration with its own timeout.
	if req.WantExplanation {
		i.runExplanation(ctx, frame, resp, logger)
	}

	resp.Confidence = DeriveConfidence(resp.Validation, parseConfidence, i.cfg.LowConfidenceThreshold)
	return resp
}

// acquire produces the candidate frame JSON, either straight from the
// request or via the extraction adapter. The returned confidence pointer is
// nil when extraction did not participate.
func (i *Interpreter) acquire(ctx context.Context, req Request, logger *slog.Logger) (json.RawMessage, *float64, *StageError) {
	hasDirect := len(req.FCF) > 0
	hasRaw := req.ImageURL != "" || req.Text != ""

	switch {
	case hasDirect:
		if hasRaw {
			// Documented precedence: a direct frame always wins over raw
			// input supplied in the same request.
			logger.Warn("request carries both a direct frame and raw input; using the direct frame")
		}
		return req.FCF, nil, nil
	case !hasRaw:
		return nil, nil, &StageError{Stage: StageSchema, Err: errors.New("request carries neither a frame nor raw input")}
	case i.extractor == nil:
		return nil, nil, &StageError{Stage: StageExtraction, Err: errors.New("no extraction capability is configured")}
	}

	extractCtx, cancel := context.WithTimeout(ctx, i.cfg.ExtractTimeout)
	defer cancel()

	var result *service.ExtractionResult
	var err error
	if req.ImageURL != "" {
		result, err = i.extractor.ExtractFromImage(extractCtx, req.ImageURL, req.Hints)
	} else {
		result, err = i.extractor.ExtractFromText(extractCtx, req.Text, req.Hints)
	}
	if err != nil {
		return nil, nil, &StageError{Stage: StageExtraction, Err: err}
	}
	if result == nil || len(result.FrameJSON) == 0 {
		return nil, nil, &StageError{Stage: StageExtraction, Err: common.ErrEmptyExtraction}
	}

	confidence := result.ParseConfidence
	return result.FrameJSON, &confidence, nil
}

// stampProvenance sets the frame's source tag from how it actually arrived.
// Provenance is never inferred from frame content.
func (i *Interpreter) stampProvenance(frame *model.FeatureControlFrame, req Request) {
	switch {
	case len(req.FCF) > 0:
		if frame.Source.InputType == "" {
			frame.Source.InputType = model.SourceJSON
		}
	case req.ImageURL != "" || req.Text != "":
		frame.Source.InputType = model.SourceImage
	}
}

// runCalculation attaches a calculation result, or a calculation failure
// note, to the response.
func (i *Interpreter) runCalculation(frame *model.FeatureControlFrame, req Request, resp *Response, logger *slog.Logger) {
	if req.CalculationInput == nil {
		return
	}
	// An empty characteristic means "the frame that was acquired": callers
	// submitting raw input cannot know the characteristic before extraction
	// has run.
	if req.CalculationInput.Characteristic != "" &&
		req.CalculationInput.Characteristic != frame.Characteristic {
		resp.CalcFailure = fmt.Sprintf(
			"calculation input targets %q but the frame's characteristic is %q",
			req.CalculationInput.Characteristic, frame.Characteristic)
		logger.Warn("calculation skipped", "reason", resp.CalcFailure)
		return
	}

	in := calc.InputFromFrame(frame, req.CalculationInput.ActualSize)
	if req.CalculationInput.Size != nil {
		in.Size = req.CalculationInput.Size
	}
	in.ProfileDistribution = req.CalculationInput.ProfileDistribution

	result, err := calc.Calculate(in)
	if err != nil {
		resp.CalcFailure = err.Error()
		logger.Warn("calculation failed", "error", err)
		return
	}
	resp.CalcResult = &CalcEnvelope{
		Characteristic: frame.Characteristic,
		Result:         result,
	}
}

// runExplanation attaches a best-effort explanation. Any failure, timeout
// included, degrades to an omitted explanation.
func (i *Interpreter) runExplanation(ctx context.Context, frame *model.FeatureControlFrame, resp *Response, logger *slog.Logger) {
	if i.explainer == nil {
		return
	}

	frameJSON, err := model.Serialize(frame)
	if err != nil {
		logger.Warn("explanation skipped, frame serialization failed", "error", err)
		return
	}
	validationJSON, _ := json.Marshal(resp.Validation)
	var calcJSON []byte
	if resp.CalcResult != nil {
		calcJSON, _ = json.Marshal(resp.CalcResult)
	}

	explainCtx, cancel := context.WithTimeout(ctx, i.cfg.ExplainTimeout)
	defer cancel()

	explanation, err := i.explainer.Explain(explainCtx, service.ExplanationRequest{
		FrameJSON:      frameJSON,
		ValidationJSON: validationJSON,
		CalcJSON:       calcJSON,
	})
	if err != nil {
		logger.Warn("explanation stage degraded, omitting explanation", "error", err)
		return
	}

	resp.Explanation = explanation
	resp.PromptVersion = extract.PromptVersion
}

func failureResponse(req Request, stageErr *StageError) *Response {
	status := StatusError
	if stageErr.Stage == StageSchema {
		status = StatusInvalid
	}
	return &Response{
		Status:        status,
		Stage:         stageErr.Stage,
		Message:       stageErr.Err.Error(),
		CorrelationID: req.CorrelationID,
	}
}

// Record projects a finished response into the persistence collaborator's
// record shape. The payload is the full serialized response.
func Record(id string, resp *Response) (*service.InterpretationRecord, error) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize response: %w", err)
	}
	rec := &service.InterpretationRecord{
		ID:            id,
		CorrelationID: resp.CorrelationID,
		Status:        string(resp.Status),
		Confidence:    string(resp.Confidence),
		CreatedAt:     time.Now().UTC(),
		Payload:       payload,
	}
	if resp.FCF != nil {
		rec.Characteristic = string(resp.FCF.Characteristic)
	}
	return rec, nil
}
