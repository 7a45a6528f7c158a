package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillStudyDays(db); err != nil {
		return fmt.Errorf("backfilling study_days: %w", err)
	}
	for _, table := range []string{"plants", "breaks"} {
		if err := migrateBackfillFinishedNS(db, table); err != nil {
			return fmt.Errorf("backfilling %s.finished_ns: %w", table, err)
		}
	}
	return nil
}

// migrateBackfillFinishedNS fills the sortable instant of rows written before
// finished_ns existed. Text timestamps with different offsets do not sort
// chronologically, so ordering uses this column.
func migrateBackfillFinishedNS(db *sql.DB, table string) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT rowid, finished_at FROM `+table+` WHERE finished_ns = 0`)
	if err != nil {
		return err
	}
	type stamp struct {
		rowid int64
		ns    int64
	}
	var stamps []stamp
	for rows.Next() {
		var (
			id       int64
			finished string
		)
		if err := rows.Scan(&id, &finished); err != nil {
			rows.Close()
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, finished)
		if err != nil {
			rows.Close()
			return fmt.Errorf("row %d: %w", id, err)
		}
		stamps = append(stamps, stamp{rowid: id, ns: t.UnixNano()})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, s := range stamps {
		if _, err := db.ExecContext(ctx, `UPDATE `+table+` SET finished_ns = ? WHERE rowid = ?`, s.ns, s.rowid); err != nil {
			return err
		}
	}
	return nil
}

// migrateBackfillStudyDays rebuilds the daily totals of databases created
// before study_days existed. Totals are only derived when the table is empty.
func migrateBackfillStudyDays(db *sql.DB) error {
	ctx := context.Background()

	var days, plants int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_days`).Scan(&days); err != nil {
		return fmt.Errorf("counting study_days: %w", err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plants`).Scan(&plants); err != nil {
		return fmt.Errorf("counting plants: %w", err)
	}
	if days > 0 || plants == 0 {
		return nil
	}

	_, err := db.ExecContext(ctx, `INSERT INTO study_days (day, study_ns, plants)
		SELECT substr(finished_at, 1, 10), SUM(duration_ns), COUNT(*)
		FROM plants
		GROUP BY substr(finished_at, 1, 10)`)
	if err != nil {
		return fmt.Errorf("aggregating plants: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plants (
		id           TEXT PRIMARY KEY,
		species      TEXT NOT NULL
		             CHECK(species IN ('spruce','double_spruce','maple','flower')),
		seed         INTEGER NOT NULL,
		max_age_ns   INTEGER NOT NULL CHECK(max_age_ns > 0),
		final_age_ns INTEGER NOT NULL CHECK(final_age_ns >= 0),
		duration_ns  INTEGER NOT NULL CHECK(duration_ns >= 0),
		finished_at  TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plants_finished ON plants(finished_at)`,

	`CREATE TABLE IF NOT EXISTS breaks (
		id          TEXT PRIMARY KEY,
		duration_ns INTEGER NOT NULL CHECK(duration_ns >= 0),
		finished_at TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_breaks_finished ON breaks(finished_at)`,

	`CREATE TABLE IF NOT EXISTS study_days (
		day      TEXT PRIMARY KEY,
		study_ns INTEGER NOT NULL DEFAULT 0,
		plants   INTEGER NOT NULL DEFAULT 0
	)`,

	// Distinguish plants grown in a session from ones imported from a
	// history file.
	`ALTER TABLE plants ADD COLUMN source TEXT NOT NULL DEFAULT 'session'`,

	// finished_at keeps the offset the record was stamped with; finished_ns
	// is the same instant as UTC nanoseconds and is what listings sort by.
	`ALTER TABLE plants ADD COLUMN finished_ns INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE breaks ADD COLUMN finished_ns INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_plants_finished_ns ON plants(finished_ns)`,
	`CREATE INDEX IF NOT EXISTS idx_breaks_finished_ns ON breaks(finished_ns)`,
}
