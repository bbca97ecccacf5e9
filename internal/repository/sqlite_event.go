package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/db"
	"github.com/google/uuid"
)

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

// CreateBatch stores events in order. Events without an ID get one.
func (r *SQLiteEventRepo) CreateBatch(ctx context.Context, summaryID string, events []app.SessionEvent) error {
	query := `INSERT INTO session_events (id, summary_id, seq, at, kind, detail, stress)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i := range events {
		e := &events[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.SummaryID = summaryID
		if _, err := r.db.ExecContext(ctx, query,
			e.ID, summaryID, i+1, formatTime(e.At), string(e.Kind), e.Detail, e.Stress,
		); err != nil {
			return fmt.Errorf("inserting session event %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteEventRepo) ListBySummary(ctx context.Context, summaryID string) ([]app.SessionEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, summary_id, at, kind, detail, stress FROM session_events
		 WHERE summary_id = ? ORDER BY seq, at`, summaryID)
	if err != nil {
		return nil, fmt.Errorf("listing session events: %w", err)
	}
	defer rows.Close()

	var out []app.SessionEvent
	for rows.Next() {
		var (
			e    app.SessionEvent
			at   string
			kind string
		)
		if err := rows.Scan(&e.ID, &e.SummaryID, &at, &kind, &e.Detail, &e.Stress); err != nil {
			return nil, fmt.Errorf("scanning session event: %w", err)
		}
		e.Kind = app.EventKind(kind)
		if e.At, err = parseTime("at", at); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session events: %w", err)
	}
	return out, nil
}
