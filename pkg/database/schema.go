package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS registrations (
		id                 UUID PRIMARY KEY,
		first_name         TEXT NOT NULL,
		last_name          TEXT NOT NULL,
		email              TEXT NOT NULL,
		phone              TEXT NOT NULL,
		date_of_birth      TEXT NOT NULL,
		grade              TEXT NOT NULL,
		guardian_name      TEXT NOT NULL,
		guardian_phone     TEXT NOT NULL,
		address            TEXT NOT NULL,
		previous_school    TEXT NOT NULL DEFAULT '',
		medical_conditions TEXT NOT NULL DEFAULT '',
		registered_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS registrations_grade_idx ON registrations (grade)`,
	`CREATE INDEX IF NOT EXISTS registrations_registered_at_idx ON registrations (registered_at DESC)`,
}

// EnsureSchema creates the registration tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
