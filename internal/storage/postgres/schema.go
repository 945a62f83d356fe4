package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const summariesSchema = `
CREATE TABLE IF NOT EXISTS simulation_summaries (
	id            UUID PRIMARY KEY,
	run_id        TEXT NOT NULL UNIQUE,
	exit_code     INTEGER NOT NULL,
	success       BOOLEAN NOT NULL,
	warnings      BIGINT NOT NULL DEFAULT 0,
	severe_errors BIGINT NOT NULL DEFAULT 0,
	fatal         BOOLEAN NOT NULL DEFAULT FALSE,
	duration_ms   BIGINT NOT NULL DEFAULT 0,
	output_files  JSONB NOT NULL DEFAULT '{}'::jsonb,
	err_tail      JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the tables this service writes to.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, summariesSchema); err != nil {
		return fmt.Errorf("create simulation_summaries: %w", err)
	}
	return nil
}
