package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const schema = `
CREATE TABLE IF NOT EXISTS creators (
	seq                   BIGSERIAL,
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL DEFAULT '',
	channel_name          TEXT NOT NULL DEFAULT '',
	subscribers           BIGINT NOT NULL DEFAULT 0,
	total_views           BIGINT NOT NULL DEFAULT 0,
	video_count           BIGINT NOT NULL DEFAULT 0,
	revenue               DOUBLE PRECISION NOT NULL DEFAULT 0,
	niche                 TEXT NOT NULL DEFAULT '',
	avatar_url            TEXT NOT NULL DEFAULT '',
	status                TEXT NOT NULL DEFAULT '',
	trend                 TEXT NOT NULL DEFAULT '',
	linked_channel_handle TEXT NOT NULL DEFAULT '',
	last_synced           TEXT NOT NULL DEFAULT '',
	monetization_status   TEXT NOT NULL DEFAULT '',
	upload_policy         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS audit_logs (
	seq       BIGSERIAL PRIMARY KEY,
	id        TEXT NOT NULL UNIQUE,
	logged_at TEXT NOT NULL,
	action    TEXT NOT NULL,
	details   TEXT NOT NULL DEFAULT '',
	actor     TEXT NOT NULL DEFAULT ''
);`

// Execer runs a statement; satisfied by *pgxpool.Pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate creates the tables used by the postgres storage backend.
func Migrate(ctx context.Context, pool Execer) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
