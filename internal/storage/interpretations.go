package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/service"
)

// SaveInterpretation stores one finished interpretation record.
func (s *SQLiteStorage) SaveInterpretation(ctx context.Context, rec *service.InterpretationRecord) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	if rec.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if len(rec.Payload) == 0 {
		return fmt.Errorf("record payload is required")
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interpretations (id, correlation_id, characteristic, status, confidence, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CorrelationID, rec.Characteristic, rec.Status, rec.Confidence, string(rec.Payload), createdAt)
	if err != nil {
		return fmt.Errorf("failed to save interpretation: %w", err)
	}
	return nil
}

// GetInterpretation retrieves one record by ID.
func (s *SQLiteStorage) GetInterpretation(ctx context.Context, id string) (*service.InterpretationRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, correlation_id, characteristic, status, confidence, payload, created_at
		FROM interpretations WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("interpretation %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get interpretation: %w", err)
	}
	return rec, nil
}

// ListInterpretations returns records newest first, filtered and paged.
func (s *SQLiteStorage) ListInterpretations(ctx context.Context, filter service.RecordFilter) ([]service.InterpretationRecord, error) {
	query := `
		SELECT id, correlation_id, characteristic, status, confidence, payload, created_at
		FROM interpretations WHERE 1=1`
	args := make([]any, 0, 4)

	if filter.Characteristic != "" {
		query += ` AND characteristic = ?`
		args = append(args, filter.Characteristic)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	query += ` ORDER BY created_at DESC`
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, limit)
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interpretations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []service.InterpretationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interpretation: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interpretations: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*service.InterpretationRecord, error) {
	var rec service.InterpretationRecord
	var payload string
	if err := row.Scan(&rec.ID, &rec.CorrelationID, &rec.Characteristic,
		&rec.Status, &rec.Confidence, &payload, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Payload = []byte(payload)
	return &rec, nil
}
