package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/service"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "framecheck.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRecord(id string) *service.InterpretationRecord {
	return &service.InterpretationRecord{
		ID:             id,
		CorrelationID:  "corr-" + id,
		Characteristic: "position",
		Status:         "ok",
		Confidence:     "high",
		Payload:        []byte(`{"status":"ok"}`),
		CreatedAt:      time.Now().UTC(),
	}
}

func TestSaveAndGetInterpretation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	rec := testRecord("a1")
	require.NoError(t, s.SaveInterpretation(ctx, rec))

	got, err := s.GetInterpretation(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.CorrelationID, got.CorrelationID)
	assert.Equal(t, rec.Characteristic, got.Characteristic)
	assert.Equal(t, rec.Status, got.Status)
	assert.Equal(t, rec.Confidence, got.Confidence)
	assert.JSONEq(t, `{"status":"ok"}`, string(got.Payload))
}

func TestGetInterpretationNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetInterpretation(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveInterpretationValidation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	assert.Error(t, s.SaveInterpretation(ctx, nil))
	assert.Error(t, s.SaveInterpretation(ctx, &service.InterpretationRecord{Payload: []byte("{}")}))
	assert.Error(t, s.SaveInterpretation(ctx, &service.InterpretationRecord{ID: "no-payload"}))

	rec := testRecord("dup")
	require.NoError(t, s.SaveInterpretation(ctx, rec))
	assert.Error(t, s.SaveInterpretation(ctx, rec))
}

func TestSaveInterpretationDefaultsCreatedAt(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	rec := testRecord("ts")
	rec.CreatedAt = time.Time{}
	require.NoError(t, s.SaveInterpretation(ctx, rec))

	got, err := s.GetInterpretation(ctx, "ts")
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestListInterpretations(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	records := []*service.InterpretationRecord{
		{ID: "r1", Characteristic: "position", Status: "ok", Confidence: "high", Payload: []byte("{}"), CreatedAt: base},
		{ID: "r2", Characteristic: "flatness", Status: "ok", Confidence: "medium", Payload: []byte("{}"), CreatedAt: base.Add(time.Minute)},
		{ID: "r3", Characteristic: "position", Status: "invalid", Confidence: "low", Payload: []byte("{}"), CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		require.NoError(t, s.SaveInterpretation(ctx, rec))
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := s.ListInterpretations(ctx, service.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "r3", got[0].ID)
		assert.Equal(t, "r1", got[2].ID)
	})

	t.Run("filter by characteristic", func(t *testing.T) {
		got, err := s.ListInterpretations(ctx, service.RecordFilter{Characteristic: "position"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filter by status", func(t *testing.T) {
		got, err := s.ListInterpretations(ctx, service.RecordFilter{Status: "invalid"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "r3", got[0].ID)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := s.ListInterpretations(ctx, service.RecordFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "r2", got[0].ID)
	})

	t.Run("no matches", func(t *testing.T) {
		got, err := s.ListInterpretations(ctx, service.RecordFilter{Status: "error"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Migrate(context.Background()))
}

func TestNewSQLiteStorageRequiresPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}
