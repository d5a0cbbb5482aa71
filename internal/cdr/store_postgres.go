package cdr

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

// PostgresStore persists call records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed call record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the ambient transaction when one is in flight, otherwise the
// pool. Lets the link service update records and links atomically.
func (s *PostgresStore) q(ctx context.Context) querier {
	if txn, ok := tx.From(ctx); ok {
		return txn
	}
	return s.db
}

const insertRecordSQL = `
INSERT INTO call_records (
	id, user_id, import_id, call_time, direction,
	source_number, destination_number, duration_seconds,
	disposition, time_to_answer_seconds, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT DO NOTHING`

// Insert stores one record. Re-uploaded rows (same user, call time and
// numbers) hit the dedupe index and come back as sentinel.ErrConflict.
func (s *PostgresStore) Insert(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.q(ctx).ExecContext(ctx, insertRecordSQL,
		rec.ID.String(),
		rec.UserID.String(),
		rec.ImportID.String(),
		rec.CallTime,
		rec.Direction.String(),
		rec.SourceNumber,
		rec.DestinationNumber,
		rec.DurationSeconds,
		rec.Disposition,
		rec.TimeToAnswerSeconds,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert call record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert call record: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

const getRecordSQL = `
SELECT id, user_id, import_id, call_time, direction,
	source_number, destination_number, duration_seconds,
	disposition, time_to_answer_seconds, created_at
FROM call_records
WHERE id = $1`

// GetByID returns one record or sentinel.ErrNotFound.
func (s *PostgresStore) GetByID(ctx context.Context, recordID id.CDRID) (Record, error) {
	row := s.q(ctx).QueryRowContext(ctx, getRecordSQL, recordID.String())

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("get call record: %w", err)
	}
	return rec, nil
}

const findWindowSQL = `
SELECT id, user_id, import_id, call_time, direction,
	source_number, destination_number, duration_seconds,
	disposition, time_to_answer_seconds, created_at
FROM call_records
WHERE user_id = $1 AND call_time >= $2 AND call_time <= $3
ORDER BY call_time ASC`

// FindWindow returns the user's records with call time in [from, to],
// ordered by call time ascending.
func (s *PostgresStore) FindWindow(ctx context.Context, userID id.UserID, from, to time.Time) ([]Record, error) {
	rows, err := s.q(ctx).QueryContext(ctx, findWindowSQL, userID.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("find call records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("find call records: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find call records: %w", err)
	}
	return out, nil
}

const countByImportSQL = `SELECT COUNT(*) FROM call_records WHERE import_id = $1`

// CountByImport returns how many rows one import batch contributed.
func (s *PostgresStore) CountByImport(ctx context.Context, importID id.ImportID) (int, error) {
	var n int
	if err := s.q(ctx).QueryRowContext(ctx, countByImportSQL, importID.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count import records: %w", err)
	}
	return n, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (Record, error) {
	var rec Record
	var recID, userID, importID, dir string
	err := row.Scan(
		&recID, &userID, &importID, &rec.CallTime, &dir,
		&rec.SourceNumber, &rec.DestinationNumber, &rec.DurationSeconds,
		&rec.Disposition, &rec.TimeToAnswerSeconds, &rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	// Rows were validated on the way in; parse failures here mean the table
	// was touched outside the application.
	parsedID, err := uuid.Parse(recID)
	if err != nil {
		return Record{}, fmt.Errorf("corrupt record id %q: %w", recID, err)
	}
	parsedUser, err := uuid.Parse(userID)
	if err != nil {
		return Record{}, fmt.Errorf("corrupt user id %q: %w", userID, err)
	}
	parsedImport, err := uuid.Parse(importID)
	if err != nil {
		return Record{}, fmt.Errorf("corrupt import id %q: %w", importID, err)
	}

	rec.ID = id.CDRID(parsedID)
	rec.UserID = id.UserID(parsedUser)
	rec.ImportID = id.ImportID(parsedImport)
	rec.Direction = id.Direction(dir)
	return rec, nil
}
