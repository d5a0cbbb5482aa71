package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"callsync/pkg/attrs"
	id "callsync/pkg/domain"
	"callsync/pkg/platform/tx"
)

// PostgresStore persists activity events for the per-user feed.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the ambient transaction when one is on the context.
func (s *PostgresStore) q(ctx context.Context) querier {
	if sqlTx, ok := tx.From(ctx); ok {
		return sqlTx
	}
	return s.db
}

const appendEventSQL = `
INSERT INTO activity_events (user_id, kind, occurred_at, attrs)
VALUES ($1, $2, $3, $4)`

const listEventsSQL = `
SELECT user_id, kind, occurred_at, attrs
FROM activity_events
WHERE user_id = $1
ORDER BY occurred_at DESC, id DESC
LIMIT $2`

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	attrsJSON := []byte("{}")
	if m := attrs.Collect(event.Attrs); m != nil {
		encoded, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal event attrs: %w", err)
		}
		attrsJSON = encoded
	}

	_, err := s.q(ctx).ExecContext(ctx, appendEventSQL,
		event.UserID.String(),
		string(event.Kind),
		event.Timestamp,
		attrsJSON,
	)
	if err != nil {
		return fmt.Errorf("append activity event: %w", err)
	}
	return nil
}

// ListByUser returns the user's events newest first. A limit <= 0 falls back
// to DefaultFeedLimit.
func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	rows, err := s.q(ctx).QueryContext(ctx, listEventsSQL, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list activity events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity events: %w", err)
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var (
		event     Event
		rawUserID string
		kind      string
		attrsJSON []byte
	)
	if err := rows.Scan(&rawUserID, &kind, &event.Timestamp, &attrsJSON); err != nil {
		return Event{}, fmt.Errorf("scan activity event: %w", err)
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return Event{}, fmt.Errorf("corrupt user id %q: %w", rawUserID, err)
	}
	event.UserID = id.UserID(userID)
	event.Kind = Kind(kind)

	var m map[string]any
	if len(attrsJSON) > 0 {
		if err := json.Unmarshal(attrsJSON, &m); err != nil {
			return Event{}, fmt.Errorf("decode event attrs: %w", err)
		}
	}
	event.Attrs = flattenAttrs(m)
	return event, nil
}

// flattenAttrs rebuilds the alternating key-value slice in key order so
// reads are deterministic.
func flattenAttrs(m map[string]any) []any {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, len(m)*2)
	for _, k := range keys {
		kv = append(kv, k, m[k])
	}
	return kv
}
