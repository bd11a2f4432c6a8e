package engine

import (
	"context"
	"sync"

	"github.com/framecheck/framecheck/internal/service"
)

// MockExtractor is a test implementation of the service.Extractor interface.
// It returns a canned result or error and records each call.
type MockExtractor struct {
	Result *service.ExtractionResult
	Err    error
	calls  []MockExtractionCall
	mu     sync.Mutex
}

// MockExtractionCall records details of one extraction request.
type MockExtractionCall struct {
	ImageURL string
	Text     string
	Hints    map[string]string
}

// ExtractFromImage returns the canned result.
func (m *MockExtractor) ExtractFromImage(_ context.Context, imageURL string, hints map[string]string) (*service.ExtractionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockExtractionCall{ImageURL: imageURL, Hints: hints})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// ExtractFromText returns the canned result.
func (m *MockExtractor) ExtractFromText(_ context.Context, text string, hints map[string]string) (*service.ExtractionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockExtractionCall{Text: text, Hints: hints})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockExtractor) Calls() []MockExtractionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockExtractionCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockExplainer is a test implementation of the service.Explainer interface.
type MockExplainer struct {
	Result    *service.Explanation
	Err       error
	mu        sync.Mutex
	callCount int
}

// Explain returns the canned explanation.
func (m *MockExplainer) Explain(_ context.Context, _ service.ExplanationRequest) (*service.Explanation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// CallCount returns the number of explanation requests received.
func (m *MockExplainer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
