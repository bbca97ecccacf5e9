package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate brings the schema up to date. Every statement is idempotent, so
// it runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillEventSeq(db); err != nil {
		return fmt.Errorf("backfilling event seq values: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_summaries (
		id                 TEXT PRIMARY KEY,
		environment        TEXT NOT NULL
		                   CHECK(environment IN ('desk','hoersaal','supermarkt')),
		level              INTEGER NOT NULL CHECK(level BETWEEN 1 AND 3),
		started_at         TEXT NOT NULL,
		ended_at           TEXT NOT NULL,
		duration_min       INTEGER NOT NULL DEFAULT 0 CHECK(duration_min >= 0),
		wasted_min         INTEGER NOT NULL DEFAULT 0 CHECK(wasted_min >= 0),
		tasks_done_session INTEGER NOT NULL DEFAULT 0,
		tasks_done_total   INTEGER NOT NULL DEFAULT 0,
		tasks_total        INTEGER NOT NULL DEFAULT 0,
		refocuses          INTEGER NOT NULL DEFAULT 0,
		give_ins           INTEGER NOT NULL DEFAULT 0,
		refocus_streak     INTEGER NOT NULL DEFAULT 0,
		stress_now_pct     INTEGER NOT NULL DEFAULT 0 CHECK(stress_now_pct BETWEEN 0 AND 100),
		stress_peak_pct    INTEGER NOT NULL DEFAULT 0 CHECK(stress_peak_pct BETWEEN 0 AND 100),
		seed               INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_summaries_ended ON session_summaries(ended_at)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_env ON session_summaries(environment)`,

	`CREATE TABLE IF NOT EXISTS session_events (
		id         TEXT PRIMARY KEY,
		summary_id TEXT NOT NULL REFERENCES session_summaries(id) ON DELETE CASCADE,
		at         TEXT NOT NULL,
		kind       TEXT NOT NULL
		           CHECK(kind IN ('gave_in','refocus','interrupt','hyperfocus','task_completed','time_blindness','pile_up','level_changed')),
		detail     TEXT NOT NULL DEFAULT '',
		stress     REAL NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_summary ON session_events(summary_id)`,

	// Added after the first release: how the session was driven.
	`ALTER TABLE session_summaries ADD COLUMN source TEXT NOT NULL DEFAULT 'interactive'`,

	// Events used to be ordered by timestamp alone, which ties within a tick.
	`ALTER TABLE session_events ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillEventSeq numbers events of summaries archived before the
// seq column existed, in (at, rowid) order.
func migrateBackfillEventSeq(db *sql.DB) error {
	ctx := context.Background()
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT summary_id FROM session_events
		 WHERE summary_id IN (
		     SELECT summary_id FROM session_events GROUP BY summary_id HAVING MAX(seq) = 0 AND COUNT(*) > 1
		 )`)
	if err != nil {
		return fmt.Errorf("finding unsequenced summaries: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if err := backfillSummarySeq(ctx, db, id); err != nil {
			return fmt.Errorf("summary %s: %w", id, err)
		}
	}
	return nil
}

func backfillSummarySeq(ctx context.Context, db *sql.DB, summaryID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM session_events WHERE summary_id = ? ORDER BY at, rowid`, summaryID)
	if err != nil {
		return err
	}
	var eventIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		eventIDs = append(eventIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, id := range eventIDs {
		if _, err := tx.ExecContext(ctx, `UPDATE session_events SET seq = ? WHERE id = ?`, i+1, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
