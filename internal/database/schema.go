package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the full DDL, idempotent so migrate can rerun safely.
const schema = `
CREATE TABLE IF NOT EXISTS resources (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT NOT NULL UNIQUE,
	department      TEXT,
	weekly_capacity DOUBLE PRECISION NOT NULL,
	active          BOOLEAN NOT NULL DEFAULT TRUE,
	deleted         BOOLEAN NOT NULL DEFAULT FALSE,
	create_time     TIMESTAMPTZ NOT NULL,
	change_time     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	start_date       TIMESTAMPTZ NOT NULL,
	end_date         TIMESTAMPTZ NOT NULL,
	status           TEXT NOT NULL,
	priority         INTEGER NOT NULL DEFAULT 0,
	project_type     TEXT NOT NULL,
	director_id      TEXT,
	change_lead_id   TEXT,
	business_lead_id TEXT,
	create_time      TIMESTAMPTZ NOT NULL,
	change_time      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS resource_allocations (
	id                 TEXT PRIMARY KEY,
	resource_id        TEXT NOT NULL REFERENCES resources(id),
	project_id         TEXT NOT NULL REFERENCES projects(id),
	allocated_hours    DOUBLE PRECISION NOT NULL,
	start_date         TIMESTAMPTZ NOT NULL,
	end_date           TIMESTAMPTZ NOT NULL,
	status             TEXT NOT NULL,
	weekly_allocations JSONB NOT NULL DEFAULT '{}',
	create_time        TIMESTAMPTZ NOT NULL,
	change_time        TIMESTAMPTZ NOT NULL,
	CHECK (start_date <= end_date)
);
CREATE INDEX IF NOT EXISTS idx_allocations_resource ON resource_allocations(resource_id);
CREATE INDEX IF NOT EXISTS idx_allocations_dates ON resource_allocations(start_date, end_date);

CREATE TABLE IF NOT EXISTS time_entries (
	id            TEXT PRIMARY KEY,
	allocation_id TEXT NOT NULL REFERENCES resource_allocations(id) ON DELETE CASCADE,
	resource_id   TEXT NOT NULL REFERENCES resources(id),
	week_key      TEXT NOT NULL,
	monday        DOUBLE PRECISION NOT NULL DEFAULT 0,
	tuesday       DOUBLE PRECISION NOT NULL DEFAULT 0,
	wednesday     DOUBLE PRECISION NOT NULL DEFAULT 0,
	thursday      DOUBLE PRECISION NOT NULL DEFAULT 0,
	friday        DOUBLE PRECISION NOT NULL DEFAULT 0,
	saturday      DOUBLE PRECISION NOT NULL DEFAULT 0,
	sunday        DOUBLE PRECISION NOT NULL DEFAULT 0,
	create_time   TIMESTAMPTZ NOT NULL,
	change_time   TIMESTAMPTZ NOT NULL,
	UNIQUE (allocation_id, week_key)
);
CREATE INDEX IF NOT EXISTS idx_time_entries_resource_week ON time_entries(resource_id, week_key);

CREATE TABLE IF NOT EXISTS weekly_submissions (
	id           TEXT PRIMARY KEY,
	resource_id  TEXT NOT NULL REFERENCES resources(id),
	week_key     TEXT NOT NULL,
	status       TEXT NOT NULL,
	submitted_at TIMESTAMPTZ,
	total_hours  DOUBLE PRECISION NOT NULL DEFAULT 0,
	create_time  TIMESTAMPTZ NOT NULL,
	change_time  TIMESTAMPTZ NOT NULL,
	UNIQUE (resource_id, week_key)
);
CREATE INDEX IF NOT EXISTS idx_submissions_week ON weekly_submissions(week_key);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	resource_id   TEXT UNIQUE REFERENCES resources(id),
	active        BOOLEAN NOT NULL DEFAULT TRUE,
	create_time   TIMESTAMPTZ NOT NULL,
	change_time   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS user_roles (
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role    TEXT NOT NULL,
	PRIMARY KEY (user_id, role)
);
`

// Migrate applies the schema to the given database.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
