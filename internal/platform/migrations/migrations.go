// Package migrations applies the embedded schema migrations and reports
// their state for the admin dashboard.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type migration struct {
	Version string
	SQL     string
}

// Statements are idempotent so a partially applied set can be re-run safely.
var all = []migration{
	{
		Version: "0001_create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS mt_users (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL DEFAULT 'user',
				status TEXT NOT NULL DEFAULT 'active',
				api_key_hash TEXT NOT NULL DEFAULT '',
				metadata JSONB,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL,
				last_seen_at TIMESTAMPTZ
			)`,
	},
	{
		Version: "0002_create_error_records",
		SQL: `
			CREATE TABLE IF NOT EXISTS mt_error_records (
				id TEXT PRIMARY KEY,
				severity TEXT NOT NULL,
				source TEXT NOT NULL DEFAULT '',
				message TEXT NOT NULL,
				stack_trace TEXT NOT NULL DEFAULT '',
				resolved BOOLEAN NOT NULL DEFAULT FALSE,
				occurred_at TIMESTAMPTZ NOT NULL,
				resolved_at TIMESTAMPTZ
			)`,
	},
	{
		Version: "0003_create_content_entries",
		SQL: `
			CREATE TABLE IF NOT EXISTS mt_content_entries (
				id TEXT PRIMARY KEY,
				slug TEXT NOT NULL,
				locale TEXT NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				body TEXT NOT NULL DEFAULT '',
				published BOOLEAN NOT NULL DEFAULT FALSE,
				published_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL,
				UNIQUE (slug, locale)
			)`,
	},
	{
		Version: "0004_create_usage_events",
		SQL: `
			CREATE TABLE IF NOT EXISTS mt_usage_events (
				id TEXT PRIMARY KEY,
				tool TEXT NOT NULL,
				client_key TEXT NOT NULL DEFAULT '',
				succeeded BOOLEAN NOT NULL DEFAULT TRUE,
				duration_ms BIGINT NOT NULL DEFAULT 0,
				occurred_at TIMESTAMPTZ NOT NULL
			)`,
	},
	{
		Version: "0005_index_usage_events",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_mt_usage_events_occurred_at
			ON mt_usage_events (occurred_at)`,
	},
}

const ledgerDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL
	)`

// Versions returns every known migration version in apply order.
func Versions() []string {
	out := make([]string, 0, len(all))
	for _, m := range all {
		out = append(out, m.Version)
	}
	return out
}

// Apply runs every migration in order and records it in schema_migrations.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ledgerDDL); err != nil {
		return fmt.Errorf("create migration ledger: %w", err)
	}

	for _, m := range all {
		if _, err := db.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("apply %s: %w", m.Version, err)
		}
		if _, err := db.ExecContext(ctx, `
			INSERT INTO schema_migrations (version, applied_at)
			VALUES ($1, $2)
			ON CONFLICT (version) DO NOTHING
		`, m.Version, time.Now().UTC()); err != nil {
			return fmt.Errorf("record %s: %w", m.Version, err)
		}
	}
	return nil
}

// Applied is one recorded migration from the ledger.
type Applied struct {
	Version   string
	AppliedAt time.Time
}

// Status returns the applied migrations and any versions not yet recorded.
func Status(ctx context.Context, db *sql.DB) ([]Applied, []string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT version, applied_at FROM schema_migrations ORDER BY version
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("query migration ledger: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var applied []Applied
	for rows.Next() {
		var a Applied
		if err := rows.Scan(&a.Version, &a.AppliedAt); err != nil {
			return nil, nil, err
		}
		seen[a.Version] = true
		applied = append(applied, a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var pending []string
	for _, m := range all {
		if !seen[m.Version] {
			pending = append(pending, m.Version)
		}
	}
	return applied, pending, nil
}
