package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventmanagement/internal/domain"
)

type attendeeService struct {
	store          domain.RegistrationStore
	attendeeRepo   domain.AttendeeRepository
	notifier       domain.RegistrationNotifier
	metrics        domain.RegistrationMetrics
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService. notifier and metrics may be nil.
func NewAttendeeService(
	store domain.RegistrationStore,
	attendeeRepo domain.AttendeeRepository,
	notifier domain.RegistrationNotifier,
	metrics domain.RegistrationMetrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendeeService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &attendeeService{
		store:          store,
		attendeeRepo:   attendeeRepo,
		notifier:       notifier,
		metrics:        metrics,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// RegisterAttendee registers attendee for attendee.EventID. The checks run in this order
// inside one transaction: event exists, event not full, email not yet registered.
// A full event therefore reports ErrCapacityExceeded even for an already registered email.
func (s *attendeeService) RegisterAttendee(ctx context.Context, attendee *domain.Attendee) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var event *domain.Event
	err := s.store.WithinRegistrationTx(ctx, func(ctx context.Context, tx domain.RegistrationTx) error {
		var err error
		event, err = tx.LockEvent(ctx, attendee.EventID)
		if err != nil {
			return err
		}

		registered, err := tx.CountAttendees(ctx, event.ID)
		if err != nil {
			return err
		}
		if event.IsFull(registered) {
			return domain.ErrCapacityExceeded
		}

		if _, err := tx.GetAttendeeByEmail(ctx, event.ID, attendee.Email); err == nil {
			return domain.ErrDuplicateRegistration
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		return tx.CreateAttendee(ctx, attendee)
	})

	outcome := registrationOutcome(err)
	s.metrics.RecordRegistration(outcome)
	if err != nil {
		if outcome != domain.OutcomeError {
			s.logger.InfoContext(ctx, "registration rejected", "event_id", attendee.EventID, "outcome", outcome)
			return err
		}
		s.logger.ErrorContext(ctx, "register attendee failed", "event_id", attendee.EventID, "error", err)
		return domain.NewPersistenceError("register attendee", err)
	}

	s.logger.InfoContext(ctx, "attendee registered", "event_id", event.ID, "attendee_id", attendee.ID)
	s.notify(ctx, event, attendee)
	return nil
}

// notify runs after commit; the registration stands whatever the notifier returns.
func (s *attendeeService) notify(ctx context.Context, event *domain.Event, attendee *domain.Attendee) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendRegistrationConfirmation(ctx, event, attendee); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation not sent",
			"event_id", event.ID, "attendee_id", attendee.ID, "error", err)
	}
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return domain.OutcomeCreated
	case errors.Is(err, domain.ErrEventNotFound):
		return domain.OutcomeEventNotFound
	case errors.Is(err, domain.ErrCapacityExceeded):
		return domain.OutcomeCapacityExceeded
	case errors.Is(err, domain.ErrDuplicateRegistration):
		return domain.OutcomeDuplicate
	default:
		return domain.OutcomeError
	}
}

// ListAttendees returns a page of eventID's attendees ordered by id. An unknown event
// yields an empty page.
func (s *attendeeService) ListAttendees(ctx context.Context, eventID int64, params domain.OffsetParams) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if params.Skip < 0 || params.Limit < 1 {
		return nil, domain.ErrInvalidInput
	}

	attendees, err := s.attendeeRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "list attendees failed", "event_id", eventID, "error", err)
		return nil, domain.NewPersistenceError("list attendees", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}
