package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/db"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/repository"
	"github.com/google/uuid"
)

var ErrNothingToArchive = errors.New("summary has no session to archive")

type historyService struct {
	summaries repository.SummaryRepo
	events    repository.EventRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewHistoryService(
	summaries repository.SummaryRepo,
	events repository.EventRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) HistoryService {
	return &historyService{
		summaries: summaries,
		events:    events,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Save archives the summary and its events in one transaction. It assigns
// an ID when the summary has none.
func (s *historyService) Save(ctx context.Context, summary *app.SessionSummary) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "archive-session", startedAt, fields, err) }()

	if summary == nil || summary.Level == domain.LevelOff || summary.StartedAt.IsZero() {
		return ErrNothingToArchive
	}
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	fields["summary_id"] = summary.ID
	fields["events"] = len(summary.Events)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSummaryRepo(tx).Create(ctx, summary); err != nil {
			return err
		}
		if len(summary.Events) == 0 {
			return nil
		}
		return repository.NewSQLiteEventRepo(tx).CreateBatch(ctx, summary.ID, summary.Events)
	})
}

func (s *historyService) List(ctx context.Context, filter app.HistoryFilter) ([]app.SessionSummary, error) {
	if filter.Environment != "" {
		if _, err := domain.ParseEnvironment(string(filter.Environment)); err != nil {
			return nil, err
		}
	}
	return s.summaries.List(ctx, filter)
}

// Get returns a summary with its events.
func (s *historyService) Get(ctx context.Context, id string) (*app.SessionSummary, error) {
	summary, err := s.summaries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListBySummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading events of %s: %w", id, err)
	}
	summary.Events = events
	return summary, nil
}

func (s *historyService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "delete-session", startedAt, map[string]any{"summary_id": id}, err) }()
	return s.summaries.Delete(ctx, id)
}
