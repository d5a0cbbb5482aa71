package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// schemaVersion is the current schema version. Bump it when the schema
// changes; Migrate refuses to run against a database from another version.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// version this binary was built against.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS recordings (
    id               UUID PRIMARY KEY,
    user_id          UUID        NOT NULL,
    observed_time    TIMESTAMPTZ NOT NULL,
    duration_seconds INTEGER,
    phone_number     TEXT,
    storage_path     TEXT        NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recordings_user_time
    ON recordings (user_id, observed_time);

CREATE TABLE IF NOT EXISTS call_records (
    id                     UUID PRIMARY KEY,
    user_id                UUID        NOT NULL,
    import_id              UUID        NOT NULL,
    call_time              TIMESTAMPTZ NOT NULL,
    direction              TEXT        NOT NULL,
    source_number          TEXT,
    destination_number     TEXT,
    duration_seconds       INTEGER,
    disposition            TEXT,
    time_to_answer_seconds INTEGER,
    created_at             TIMESTAMPTZ NOT NULL
);
-- One row per logical call. Re-uploaded CSVs hit this index and are skipped.
CREATE UNIQUE INDEX IF NOT EXISTS uq_call_records_call
    ON call_records (user_id, call_time, (COALESCE(source_number, '')), (COALESCE(destination_number, '')));
CREATE INDEX IF NOT EXISTS idx_call_records_user_time
    ON call_records (user_id, call_time);
CREATE INDEX IF NOT EXISTS idx_call_records_import
    ON call_records (import_id);

CREATE TABLE IF NOT EXISTS imports (
    id          UUID        PRIMARY KEY,
    user_id     UUID        NOT NULL,
    filename    TEXT        NOT NULL,
    total_rows  INTEGER     NOT NULL,
    inserted    INTEGER     NOT NULL,
    skipped     INTEGER     NOT NULL,
    failed      INTEGER     NOT NULL,
    row_errors  TEXT[]      NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_imports_user
    ON imports (user_id, created_at);

CREATE TABLE IF NOT EXISTS links (
    id             UUID             PRIMARY KEY,
    user_id        UUID             NOT NULL,
    recording_id   UUID             NOT NULL,
    cdr_id         UUID             NOT NULL,
    score          DOUBLE PRECISION NOT NULL,
    quality        TEXT             NOT NULL,
    method         TEXT             NOT NULL,
    device_summary TEXT             NOT NULL DEFAULT '',
    client_ip      TEXT             NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ      NOT NULL,
    released_at    TIMESTAMPTZ
);
-- A recording and a call record can each carry at most one live link.
CREATE UNIQUE INDEX IF NOT EXISTS uq_links_active_recording
    ON links (recording_id) WHERE released_at IS NULL;
CREATE UNIQUE INDEX IF NOT EXISTS uq_links_active_cdr
    ON links (cdr_id) WHERE released_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_links_user
    ON links (user_id, created_at);

CREATE TABLE IF NOT EXISTS activity_events (
    id          BIGSERIAL   PRIMARY KEY,
    user_id     UUID        NOT NULL,
    kind        TEXT        NOT NULL,
    occurred_at TIMESTAMPTZ NOT NULL,
    attrs       JSONB       NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_activity_user_time
    ON activity_events (user_id, occurred_at);
`

// Migrate brings the database to the current schema. New databases get the
// full schema; existing ones are checked against schemaVersion.
func Migrate(ctx context.Context, db *sql.DB) error {
	var initialized bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('schema_version') IS NOT NULL").Scan(&initialized)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if !initialized {
		return createSchema(ctx, db)
	}

	var version int
	err = db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d",
			ErrSchemaMismatch, version, schemaVersion)
	}

	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("ensure schema_version: %w", err)
	}

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES ($1)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
