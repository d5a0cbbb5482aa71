package csvimport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/platform/tx"
)

// PostgresStore persists import summaries in PostgreSQL. RowErrors live in a
// TEXT[] column; pq.Array handles the array codec, pgx remains the driver.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed import store.
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

const insertImportSQL = `
INSERT INTO imports (
	id, user_id, filename, total_rows, inserted, skipped, failed, row_errors, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT DO NOTHING`

func (s *PostgresStore) Insert(ctx context.Context, imp Import) error {
	if err := imp.Validate(); err != nil {
		return err
	}
	if imp.CreatedAt.IsZero() {
		imp.CreatedAt = time.Now().UTC()
	}

	res, err := s.q(ctx).ExecContext(ctx, insertImportSQL,
		imp.ID.String(),
		imp.UserID.String(),
		imp.Filename,
		imp.TotalRows,
		imp.Inserted,
		imp.Skipped,
		imp.Failed,
		pq.Array(imp.RowErrors),
		imp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert import: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert import: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

const getImportSQL = `
SELECT id, user_id, filename, total_rows, inserted, skipped, failed, row_errors, created_at
FROM imports
WHERE id = $1`

func (s *PostgresStore) GetByID(ctx context.Context, impID id.ImportID) (Import, error) {
	row := s.q(ctx).QueryRowContext(ctx, getImportSQL, impID.String())

	imp, err := scanImport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Import{}, sentinel.ErrNotFound
		}
		return Import{}, fmt.Errorf("get import: %w", err)
	}
	return imp, nil
}

const listImportsSQL = `
SELECT id, user_id, filename, total_rows, inserted, skipped, failed, row_errors, created_at
FROM imports
WHERE user_id = $1
ORDER BY created_at DESC`

// ListByUser returns the user's imports newest first.
func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]Import, error) {
	rows, err := s.q(ctx).QueryContext(ctx, listImportsSQL, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("list imports: %w", err)
		}
		out = append(out, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return out, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanImport(row scannable) (Import, error) {
	var imp Import
	var impID, userID string
	var rowErrors pq.StringArray
	err := row.Scan(
		&impID, &userID, &imp.Filename,
		&imp.TotalRows, &imp.Inserted, &imp.Skipped, &imp.Failed,
		&rowErrors, &imp.CreatedAt,
	)
	if err != nil {
		return Import{}, err
	}

	parsedID, err := uuid.Parse(impID)
	if err != nil {
		return Import{}, fmt.Errorf("corrupt import id %q: %w", impID, err)
	}
	parsedUser, err := uuid.Parse(userID)
	if err != nil {
		return Import{}, fmt.Errorf("corrupt user id %q: %w", userID, err)
	}

	imp.ID = id.ImportID(parsedID)
	imp.UserID = id.UserID(parsedUser)
	if len(rowErrors) > 0 {
		imp.RowErrors = []string(rowErrors)
	}
	return imp, nil
}
