package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the
// application expects.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS events (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					run_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					hash TEXT UNIQUE NOT NULL,
					entity_name TEXT NOT NULL,
					industry TEXT NOT NULL,
					city TEXT NOT NULL,
					state TEXT NOT NULL,
					amount_usd REAL NOT NULL CHECK (amount_usd >= 0),
					round_label TEXT NOT NULL,
					investors TEXT,
					date TEXT,
					year INTEGER,
					is_outlier INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_events_entity ON events(entity_name)`,
				`CREATE INDEX idx_events_industry ON events(industry)`,
				`CREATE INDEX idx_events_city ON events(city)`,
				`CREATE INDEX idx_events_year ON events(year)`,

				`CREATE TABLE IF NOT EXISTS entity_clusters (
					entity_name TEXT PRIMARY KEY,
					run_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					cluster_id INTEGER NOT NULL,
					cluster_name TEXT NOT NULL,
					distance_to_centroid REAL NOT NULL,
					total_funding REAL NOT NULL,
					avg_funding_per_round REAL NOT NULL,
					funding_per_year REAL NOT NULL,
					num_rounds INTEGER NOT NULL,
					years_active INTEGER NOT NULL,
					industry_first TEXT NOT NULL
				)`,
				`CREATE INDEX idx_entity_clusters_cluster ON entity_clusters(cluster_id)`,

				`CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					created_at DATETIME NOT NULL,
					chosen_k INTEGER NOT NULL,
					used_fallback INTEGER NOT NULL DEFAULT 0,
					fallback_reason TEXT,
					inertia REAL NOT NULL DEFAULT 0,
					event_count INTEGER NOT NULL DEFAULT 0,
					entity_count INTEGER NOT NULL DEFAULT 0,
					stats_json TEXT
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= version {
			continue
		}

		slog.Debug("applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
