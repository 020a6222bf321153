package services

import (
	"context"
	"log/slog"
	"time"

	"eventmanagement/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	metrics        domain.RegistrationMetrics
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEventService creates an EventService. metrics may be nil.
func NewEventService(
	eventRepo domain.EventRepository,
	metrics domain.RegistrationMetrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &eventService{
		eventRepo:      eventRepo,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

// CreateEvent persists event and sets its ID. Field rules are enforced by the caller.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "create event failed", "name", event.Name, "error", err)
		return domain.NewPersistenceError("create event", err)
	}
	s.metrics.RecordEventCreated()
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "max_capacity", event.MaxCapacity)
	return nil
}

// ListUpcomingEvents returns events starting at or after the current time, earliest first.
func (s *eventService) ListUpcomingEvents(ctx context.Context, params domain.OffsetParams) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if params.Skip < 0 || params.Limit < 0 {
		return nil, domain.ErrInvalidInput
	}

	events, err := s.eventRepo.ListUpcoming(ctx, s.now(), params)
	if err != nil {
		s.logger.ErrorContext(ctx, "list upcoming events failed", "error", err)
		return nil, domain.NewPersistenceError("list upcoming events", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordRegistration(string) {}
func (noopMetrics) RecordEventCreated()       {}
