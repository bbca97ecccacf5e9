package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/db"
	"github.com/alexanderramin/focussim/internal/domain"
)

// SQLiteSummaryRepo implements SummaryRepo using a SQLite database.
type SQLiteSummaryRepo struct {
	db db.DBTX
}

func NewSQLiteSummaryRepo(conn db.DBTX) *SQLiteSummaryRepo {
	return &SQLiteSummaryRepo{db: conn}
}

const summaryColumns = `id, environment, level, started_at, ended_at, duration_min, wasted_min,
	tasks_done_session, tasks_done_total, tasks_total, refocuses, give_ins, refocus_streak,
	stress_now_pct, stress_peak_pct, seed, source`

func (r *SQLiteSummaryRepo) Create(ctx context.Context, s *app.SessionSummary) error {
	source := s.Source
	if source == "" {
		source = "interactive"
	}
	query := `INSERT INTO session_summaries (` + summaryColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Environment),
		int(s.Level),
		formatTime(s.StartedAt),
		formatTime(s.EndedAt),
		s.DurationMin,
		s.WastedMin,
		s.TasksDoneThisSession,
		s.TasksDoneTotal,
		s.TasksTotal,
		s.Refocuses,
		s.GiveIns,
		s.RefocusStreak,
		s.StressNowPct,
		s.StressPeakPct,
		s.Seed,
		source,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting session summary: %w", err)
	}
	return nil
}

func (r *SQLiteSummaryRepo) GetByID(ctx context.Context, id string) (*app.SessionSummary, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+summaryColumns+` FROM session_summaries WHERE id = ?`, id)
	s, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session summary: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// List returns summaries newest first.
func (r *SQLiteSummaryRepo) List(ctx context.Context, filter app.HistoryFilter) ([]app.SessionSummary, error) {
	var (
		where []string
		args  []any
	)
	if filter.Environment != "" {
		where = append(where, "environment = ?")
		args = append(args, string(filter.Environment))
	}
	query := `SELECT ` + summaryColumns + ` FROM session_summaries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY ended_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing session summaries: %w", err)
	}
	defer rows.Close()

	var out []app.SessionSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session summaries: %w", err)
	}
	return out, nil
}

func (r *SQLiteSummaryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_summaries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session summary: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session summary: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session summary %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (*app.SessionSummary, error) {
	var (
		s                  app.SessionSummary
		env                string
		level              int
		startedAt, endedAt string
	)
	err := row.Scan(
		&s.ID, &env, &level, &startedAt, &endedAt, &s.DurationMin, &s.WastedMin,
		&s.TasksDoneThisSession, &s.TasksDoneTotal, &s.TasksTotal, &s.Refocuses, &s.GiveIns,
		&s.RefocusStreak, &s.StressNowPct, &s.StressPeakPct, &s.Seed, &s.Source,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session summary: %w", err)
	}

	s.Environment = domain.Environment(env)
	s.EnvironmentLabel = s.Environment.Label()
	s.Level = domain.ClampLevel(level)
	s.LevelLabel = s.Level.Label()
	if s.StartedAt, err = parseTime("started_at", startedAt); err != nil {
		return nil, err
	}
	if s.EndedAt, err = parseTime("ended_at", endedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
