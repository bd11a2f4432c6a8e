package extract

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/service"
)

// mockClient is a test implementation of the Client interface.
type mockClient struct {
	frameResponse   FrameResponse
	frameErr        error
	explainResponse ExplanationResponse
	explainErr      error
	mu              sync.Mutex
	extractCalls    int
	explainCalls    int
}

func (m *mockClient) ExtractFrame(_ context.Context, _ ExtractionInput) (FrameResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extractCalls++
	return m.frameResponse, m.frameErr
}

func (m *mockClient) GenerateExplanation(_ context.Context, _ string) (ExplanationResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.explainCalls++
	return m.explainResponse, m.explainErr
}

func (m *mockClient) extractCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.extractCalls
}

func newTestExtractor(t *testing.T, client Client) *Extractor {
	t.Helper()
	e := NewExtractorWithClient(Config{MaxRetries: 1}, client, nil)
	t.Cleanup(e.Close)
	return e
}

func TestExtractFromText(t *testing.T) {
	client := &mockClient{
		frameResponse: FrameResponse{
			FrameJSON:       json.RawMessage(`{"characteristic": "position"}`),
			ParseConfidence: 0.9,
			Notes:           []string{"clear callout"},
		},
	}
	e := newTestExtractor(t, client)

	result, err := e.ExtractFromText(context.Background(), "position 0.1 to A", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"characteristic": "position"}`, string(result.FrameJSON))
	assert.InDelta(t, 0.9, result.ParseConfidence, 1e-9)
	assert.Equal(t, []string{"clear callout"}, result.Notes)
}

func TestExtractEmptyInputRejected(t *testing.T) {
	e := newTestExtractor(t, &mockClient{})

	_, err := e.ExtractFromText(context.Background(), "", nil)
	assert.ErrorIs(t, err, common.ErrExtractionFailed)

	_, err = e.ExtractFromImage(context.Background(), "", nil)
	assert.ErrorIs(t, err, common.ErrExtractionFailed)
}

func TestExtractProviderFailureWrapped(t *testing.T) {
	client := &mockClient{frameErr: errors.New("upstream 500")}
	e := newTestExtractor(t, client)

	_, err := e.ExtractFromText(context.Background(), "position 0.1 to A", nil)
	assert.ErrorIs(t, err, common.ErrExtractionFailed)
}

func TestExtractCachesByInput(t *testing.T) {
	client := &mockClient{
		frameResponse: FrameResponse{
			FrameJSON:       json.RawMessage(`{"characteristic": "flatness"}`),
			ParseConfidence: 0.95,
		},
	}
	e := newTestExtractor(t, client)

	_, err := e.ExtractFromText(context.Background(), "flatness 0.05", nil)
	require.NoError(t, err)
	_, err = e.ExtractFromText(context.Background(), "flatness 0.05", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, client.extractCount())

	// A different hint set is a different cache entry.
	_, err = e.ExtractFromText(context.Background(), "flatness 0.05", map[string]string{"sheet": "3"})
	require.NoError(t, err)
	assert.Equal(t, 2, client.extractCount())
}

func TestExplain(t *testing.T) {
	client := &mockClient{
		explainResponse: ExplanationResponse{
			Explanation: "flatness bounds the surface between two parallel planes",
			Warnings:    []string{"not a datum-relative control"},
		},
	}
	e := newTestExtractor(t, client)

	explanation, err := e.Explain(context.Background(), service.ExplanationRequest{
		FrameJSON: []byte(`{"characteristic": "flatness"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "flatness bounds the surface between two parallel planes", explanation.Explanation)
	assert.Len(t, explanation.Warnings, 1)
}

func TestCacheKeyDistinguishesInputs(t *testing.T) {
	base := ExtractionInput{Text: "position 0.1"}
	assert.Equal(t, cacheKey(base), cacheKey(ExtractionInput{Text: "position 0.1"}))
	assert.NotEqual(t, cacheKey(base), cacheKey(ExtractionInput{Text: "position 0.2"}))
	assert.NotEqual(t, cacheKey(base), cacheKey(ExtractionInput{ImageURL: "position 0.1"}))
	assert.NotEqual(t, cacheKey(base), cacheKey(ExtractionInput{Text: "position 0.1", Hints: map[string]string{"a": "1"}}))

	// Hint order must not matter.
	assert.Equal(t,
		cacheKey(ExtractionInput{Text: "x", Hints: map[string]string{"a": "1", "b": "2"}}),
		cacheKey(ExtractionInput{Text: "x", Hints: map[string]string{"b": "2", "a": "1"}}))
}

func TestFrameCacheExpiry(t *testing.T) {
	cache := newFrameCache(1) // nanosecond TTL, effectively immediate expiry
	defer cache.Close()

	cache.set("k", FrameResponse{ParseConfidence: 0.9})
	_, found := cache.get("k")
	assert.False(t, found)
	assert.Equal(t, 1, cache.size())
}
