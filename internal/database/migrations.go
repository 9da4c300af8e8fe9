package database

import (
	"fmt"
	"log/slog"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations contains all schema migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_schema_version_table",
		SQL: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_scans_table",
		SQL: `
			CREATE TABLE IF NOT EXISTS scans (
				id TEXT PRIMARY KEY,
				remote_id TEXT,
				title TEXT,
				document TEXT NOT NULL,
				summary TEXT NOT NULL,
				ai_probability REAL NOT NULL DEFAULT 0,
				plagiarism_score REAL NOT NULL DEFAULT 0,
				failed INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at);
			CREATE INDEX IF NOT EXISTS idx_scans_remote_id ON scans(remote_id);
		`,
	},
}

// Migrate applies all pending migrations in version order.
func (db *DB) Migrate() error {
	// The version table must exist before we can read the current version.
	if _, err := db.conn.Exec(migrations[0].SQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	err := db.conn.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if _, err := db.conn.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.conn.Exec(`INSERT INTO schema_version (version) VALUES (?)`, m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		slog.Info("applied migration", "version", m.Version, "name", m.Name)
	}

	return nil
}
