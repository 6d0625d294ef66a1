package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT NOT NULL,
			generated_at    TEXT NOT NULL,
			period_type     TEXT NOT NULL,
			period_date     TEXT NOT NULL,
			window_days     INTEGER NOT NULL,
			status          TEXT NOT NULL,
			tier            TEXT NOT NULL,
			trigger_metric  TEXT,
			lead_count      INTEGER NOT NULL,
			sample_adequate BOOLEAN NOT NULL,
			total_spend     REAL NOT NULL,
			blended_cac     REAL NOT NULL,
			blended_roas    REAL NOT NULL,
			payload         TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS run_bottlenecks (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL REFERENCES runs(id),
			transition   TEXT NOT NULL,
			dropoff_rate REAL NOT NULL,
			severity     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS run_recommendations (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    INTEGER NOT NULL REFERENCES runs(id),
			priority  TEXT NOT NULL,
			category  TEXT NOT NULL,
			action    TEXT NOT NULL,
			rationale TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_period ON runs(period_type, period_date)`,
		`CREATE INDEX IF NOT EXISTS idx_run_bottlenecks_run ON run_bottlenecks(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_recommendations_run ON run_recommendations(run_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
