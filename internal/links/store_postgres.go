package links

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

// PostgresStore persists links in PostgreSQL. The partial unique indexes
// uq_links_active_recording and uq_links_active_cdr back the one-live-link
// invariant even if application logic races.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed link store.
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

const linkColumns = `id, user_id, recording_id, cdr_id, score, quality, method,
	device_summary, client_ip, created_at, released_at`

// Commit replaces the recording's active link with the given one inside a
// transaction: read the current state, release the prior link, insert the
// new row. Re-committing the same pair returns the existing row; a call
// record held by another recording is a conflict.
func (s *PostgresStore) Commit(ctx context.Context, link Link) (Link, error) {
	if err := link.Validate(); err != nil {
		return Link{}, err
	}

	var committed Link
	run := func(ctx context.Context) error {
		q := s.q(ctx)

		current, err := s.activeByRecording(ctx, q, link.RecordingID)
		switch {
		case err == nil && current.CDRID == link.CDRID:
			committed = current
			return nil
		case err != nil && !errors.Is(err, sentinel.ErrNotFound):
			return err
		}

		var claimed bool
		err = q.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM links WHERE cdr_id = $1 AND recording_id <> $2 AND released_at IS NULL)`,
			link.CDRID.String(), link.RecordingID.String(),
		).Scan(&claimed)
		if err != nil {
			return fmt.Errorf("check record claim: %w", err)
		}
		if claimed {
			return sentinel.ErrConflict
		}

		if _, err := q.ExecContext(ctx,
			`UPDATE links SET released_at = $2 WHERE recording_id = $1 AND released_at IS NULL`,
			link.RecordingID.String(), link.CreatedAt,
		); err != nil {
			return fmt.Errorf("release prior link: %w", err)
		}

		if _, err := q.ExecContext(ctx, `
INSERT INTO links (`+linkColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL)`,
			link.ID.String(),
			link.UserID.String(),
			link.RecordingID.String(),
			link.CDRID.String(),
			link.Score,
			link.Quality,
			string(link.Method),
			link.DeviceSummary,
			link.ClientIP,
			link.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert link: %w", err)
		}

		committed = link
		return nil
	}

	var err error
	if _, inTx := tx.From(ctx); inTx {
		err = run(ctx)
	} else {
		err = tx.Run(ctx, s.db, run)
	}
	if err != nil {
		return Link{}, err
	}
	return committed, nil
}

// Release marks the recording's active link released or reports not found.
func (s *PostgresStore) Release(ctx context.Context, recordingID id.RecordingID, at time.Time) (Link, error) {
	row := s.q(ctx).QueryRowContext(ctx, `
UPDATE links SET released_at = $2
WHERE recording_id = $1 AND released_at IS NULL
RETURNING `+linkColumns,
		recordingID.String(), at,
	)

	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Link{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Link{}, fmt.Errorf("release link: %w", err)
	}
	return link, nil
}

// ActiveByRecording returns the recording's live link or sentinel.ErrNotFound.
func (s *PostgresStore) ActiveByRecording(ctx context.Context, recordingID id.RecordingID) (Link, error) {
	return s.activeByRecording(ctx, s.q(ctx), recordingID)
}

func (s *PostgresStore) activeByRecording(ctx context.Context, q querier, recordingID id.RecordingID) (Link, error) {
	row := q.QueryRowContext(ctx, `
SELECT `+linkColumns+`
FROM links
WHERE recording_id = $1 AND released_at IS NULL`,
		recordingID.String(),
	)

	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Link{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Link{}, fmt.Errorf("get active link: %w", err)
	}
	return link, nil
}

// ActiveCDRIDs returns the user's actively linked call record IDs keyed to
// their recordings.
func (s *PostgresStore) ActiveCDRIDs(ctx context.Context, userID id.UserID) (map[id.CDRID]id.RecordingID, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
SELECT cdr_id, recording_id
FROM links
WHERE user_id = $1 AND released_at IS NULL`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list active links: %w", err)
	}
	defer rows.Close()

	out := make(map[id.CDRID]id.RecordingID)
	for rows.Next() {
		var cdrRaw, recRaw string
		if err := rows.Scan(&cdrRaw, &recRaw); err != nil {
			return nil, fmt.Errorf("list active links: %w", err)
		}
		cdrID, err := uuid.Parse(cdrRaw)
		if err != nil {
			return nil, fmt.Errorf("corrupt cdr id %q: %w", cdrRaw, err)
		}
		recID, err := uuid.Parse(recRaw)
		if err != nil {
			return nil, fmt.Errorf("corrupt recording id %q: %w", recRaw, err)
		}
		out[id.CDRID(cdrID)] = id.RecordingID(recID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active links: %w", err)
	}
	return out, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLink(row scannable) (Link, error) {
	var link Link
	var linkID, userID, recID, cdrID, method string
	err := row.Scan(
		&linkID, &userID, &recID, &cdrID, &link.Score, &link.Quality, &method,
		&link.DeviceSummary, &link.ClientIP, &link.CreatedAt, &link.ReleasedAt,
	)
	if err != nil {
		return Link{}, err
	}

	parsedLink, err := uuid.Parse(linkID)
	if err != nil {
		return Link{}, fmt.Errorf("corrupt link id %q: %w", linkID, err)
	}
	parsedUser, err := uuid.Parse(userID)
	if err != nil {
		return Link{}, fmt.Errorf("corrupt user id %q: %w", userID, err)
	}
	parsedRec, err := uuid.Parse(recID)
	if err != nil {
		return Link{}, fmt.Errorf("corrupt recording id %q: %w", recID, err)
	}
	parsedCDR, err := uuid.Parse(cdrID)
	if err != nil {
		return Link{}, fmt.Errorf("corrupt cdr id %q: %w", cdrID, err)
	}

	link.ID = id.LinkID(parsedLink)
	link.UserID = id.UserID(parsedUser)
	link.RecordingID = id.RecordingID(parsedRec)
	link.CDRID = id.CDRID(parsedCDR)
	link.Method = Method(method)
	return link, nil
}
