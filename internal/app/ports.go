package app

import (
	"context"

	"github.com/alexanderramin/focussim/internal/domain"
)

// SimulationUseCase drives one live session.
type SimulationUseCase interface {
	Start(ctx context.Context, level domain.Level) error
	Stop(ctx context.Context) (*SessionSummary, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	SetLevel(ctx context.Context, level domain.Level) (*SessionSummary, error)
	GaveIn(ctx context.Context, meta GaveInMeta) error
	Refocus(ctx context.Context) error
	AddTask(ctx context.Context, text string) (int, error)
	CompleteTask(ctx context.Context, index int) error
	RemoveTask(ctx context.Context, index int) error
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// HistoryUseCase reads and maintains the archive of finished sessions.
type HistoryUseCase interface {
	Save(ctx context.Context, s *SessionSummary) error
	List(ctx context.Context, filter HistoryFilter) ([]SessionSummary, error)
	Get(ctx context.Context, id string) (*SessionSummary, error)
	Delete(ctx context.Context, id string) error
}

// HistoryFilter narrows a history listing. Zero values match everything.
type HistoryFilter struct {
	Environment domain.Environment
	Limit       int
}
