package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/focussim/internal/app"
)

var ErrNotFound = errors.New("not found")

// SummaryRepo stores finished session summaries. Events are stored by
// EventRepo and attached by the service.
type SummaryRepo interface {
	Create(ctx context.Context, s *app.SessionSummary) error
	GetByID(ctx context.Context, id string) (*app.SessionSummary, error)
	List(ctx context.Context, filter app.HistoryFilter) ([]app.SessionSummary, error)
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	CreateBatch(ctx context.Context, summaryID string, events []app.SessionEvent) error
	ListBySummary(ctx context.Context, summaryID string) ([]app.SessionEvent, error)
}
