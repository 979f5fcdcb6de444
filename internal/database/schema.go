package database

import (
	"context"

	"habitflow/pkg/logger"
)

// Soft deletes only: rows flip is_deleted and stay in the table.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS todos (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT 'Todo',
	priority        TEXT NOT NULL DEFAULT 'Medium',
	deadline        TIMESTAMPTZ,
	recurring_type  TEXT,
	recurring_times INT,
	is_deleted      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_user ON todos (user_id, is_deleted, created_at DESC);

CREATE TABLE IF NOT EXISTS habits (
	id                  TEXT PRIMARY KEY,
	user_id             TEXT NOT NULL,
	title               TEXT NOT NULL,
	recurrence          TEXT NOT NULL,
	weekdays            TEXT[] NOT NULL DEFAULT '{}',
	time_of_day         TEXT NOT NULL,
	status              TEXT NOT NULL DEFAULT 'Todo',
	streak              INT NOT NULL DEFAULT 0,
	last_completed_date TIMESTAMPTZ,
	is_deleted          BOOLEAN NOT NULL DEFAULT FALSE,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_habits_user ON habits (user_id, is_deleted, created_at DESC);
`

// MigrateOrCreateSchema creates the tables if they do not exist yet.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return ErrNoDatabase
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		logger.Error(ctx, "Schema bootstrap failed", "error", err)
		return err
	}
	logger.Info(ctx, "Schema ensured")
	return nil
}
