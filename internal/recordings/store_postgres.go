package recordings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/platform/tx"
)

// PostgresStore persists recording metadata in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed recording store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) q(ctx context.Context) querier {
	if txn, ok := tx.From(ctx); ok {
		return txn
	}
	return s.db
}

const insertRecordingSQL = `
INSERT INTO recordings (
	id, user_id, observed_time, duration_seconds,
	phone_number, storage_path, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT DO NOTHING`

// Insert stores one recording. Returns sentinel.ErrConflict when the ID is
// already taken.
func (s *PostgresStore) Insert(ctx context.Context, rec Recording) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.q(ctx).ExecContext(ctx, insertRecordingSQL,
		rec.ID.String(),
		rec.UserID.String(),
		rec.ObservedTime,
		rec.DurationSeconds,
		rec.PhoneNumber,
		rec.StoragePath,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recording: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert recording: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

const getRecordingSQL = `
SELECT id, user_id, observed_time, duration_seconds,
	phone_number, storage_path, created_at
FROM recordings
WHERE id = $1`

// GetByID returns one recording or sentinel.ErrNotFound.
func (s *PostgresStore) GetByID(ctx context.Context, recID id.RecordingID) (Recording, error) {
	row := s.q(ctx).QueryRowContext(ctx, getRecordingSQL, recID.String())

	rec, err := scanRecording(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recording{}, sentinel.ErrNotFound
		}
		return Recording{}, fmt.Errorf("get recording: %w", err)
	}
	return rec, nil
}

const listRecordingsSQL = `
SELECT id, user_id, observed_time, duration_seconds,
	phone_number, storage_path, created_at
FROM recordings
WHERE user_id = $1
ORDER BY observed_time DESC`

// ListByUser returns the user's recordings newest first by observed time.
func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]Recording, error) {
	rows, err := s.q(ctx).QueryContext(ctx, listRecordingsSQL, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var out []Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("list recordings: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	return out, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecording(row scannable) (Recording, error) {
	var rec Recording
	var recID, userID string
	err := row.Scan(
		&recID, &userID, &rec.ObservedTime, &rec.DurationSeconds,
		&rec.PhoneNumber, &rec.StoragePath, &rec.CreatedAt,
	)
	if err != nil {
		return Recording{}, err
	}

	parsedID, err := uuid.Parse(recID)
	if err != nil {
		return Recording{}, fmt.Errorf("corrupt recording id %q: %w", recID, err)
	}
	parsedUser, err := uuid.Parse(userID)
	if err != nil {
		return Recording{}, fmt.Errorf("corrupt user id %q: %w", userID, err)
	}

	rec.ID = id.RecordingID(parsedID)
	rec.UserID = id.UserID(parsedUser)
	return rec, nil
}
