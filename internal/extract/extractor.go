package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/service"
)

// Extractor implements service.Extractor and service.Explainer on top of a
// provider client, adding retry, rate limiting, and caching.
type Extractor struct {
	client      Client
	cache       *frameCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// NewExtractor creates an extraction adapter from configuration.
func NewExtractor(cfg Config, logger *slog.Logger) (*Extractor, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction client: %w", err)
	}
	return NewExtractorWithClient(cfg, client, logger), nil
}

// NewExtractorWithClient wires an adapter around an existing client.
// Tests inject fake clients through this path.
func NewExtractorWithClient(cfg Config, client Client, logger *slog.Logger) *Extractor {
	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: time.Duration(cfg.RetryDelay) * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		client:      client,
		cache:       newFrameCache(time.Duration(cfg.CacheTTL) * time.Second),
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// ExtractFromImage extracts a candidate frame from a drawing image URL.
func (e *Extractor) ExtractFromImage(ctx context.Context, imageURL string, hints map[string]string) (*service.ExtractionResult, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image URL is empty", common.ErrExtractionFailed)
	}
	return e.extract(ctx, ExtractionInput{ImageURL: imageURL, Hints: hints})
}

// ExtractFromText extracts a candidate frame from a free-text callout.
func (e *Extractor) ExtractFromText(ctx context.Context, text string, hints map[string]string) (*service.ExtractionResult, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: callout text is empty", common.ErrExtractionFailed)
	}
	return e.extract(ctx, ExtractionInput{Text: text, Hints: hints})
}

func (e *Extractor) extract(ctx context.Context, input ExtractionInput) (*service.ExtractionResult, error) {
	key := cacheKey(input)
	if cached, found := e.cache.get(key); found {
		e.logger.Debug("extraction cache hit", "key", key[:12])
		return toServiceResult(cached), nil
	}

	if err := e.rateLimiter.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}

	var response FrameResponse
	err := common.WithRetry(ctx, func() error {
		var callErr error
		response, callErr = e.client.ExtractFrame(ctx, input)
		return callErr
	}, e.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}

	e.cache.set(key, response)
	e.logger.Info("extraction completed",
		"parse_confidence", response.ParseConfidence,
		"notes", len(response.Notes))

	return toServiceResult(response), nil
}

// Explain generates a natural-language explanation of an interpretation.
func (e *Extractor) Explain(ctx context.Context, req service.ExplanationRequest) (*service.Explanation, error) {
	if err := e.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	prompt := buildExplanationPrompt(req.FrameJSON, req.ValidationJSON, req.CalcJSON)

	var response ExplanationResponse
	err := common.WithRetry(ctx, func() error {
		var callErr error
		response, callErr = e.client.GenerateExplanation(ctx, prompt)
		return callErr
	}, e.retryOpts)
	if err != nil {
		return nil, err
	}

	return &service.Explanation{
		Explanation: response.Explanation,
		Warnings:    response.Warnings,
	}, nil
}

// Close releases the cache and rate limiter goroutines.
func (e *Extractor) Close() {
	e.cache.Close()
	e.rateLimiter.Close()
}

func toServiceResult(r FrameResponse) *service.ExtractionResult {
	return &service.ExtractionResult{
		FrameJSON:       r.FrameJSON,
		ParseConfidence: r.ParseConfidence,
		Notes:           r.Notes,
	}
}
