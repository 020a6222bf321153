package controllers

import (
	"context"
	"io"
	"log/slog"

	"eventmanagement/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr   error
	listErr     error
	listResult  []*domain.Event
	lastCreate  *domain.Event
	lastListArg domain.OffsetParams
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	f.lastCreate = e
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = 42
	return nil
}

func (f *fakeEventService) ListUpcomingEvents(ctx context.Context, params domain.OffsetParams) ([]*domain.Event, error) {
	f.lastListArg = params
	return f.listResult, f.listErr
}

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	registerErr  error
	listErr      error
	listResult   []*domain.Attendee
	lastRegister *domain.Attendee
	lastEventID  int64
	lastParams   domain.OffsetParams
}

func (f *fakeAttendeeService) RegisterAttendee(ctx context.Context, a *domain.Attendee) error {
	f.lastRegister = a
	if f.registerErr != nil {
		return f.registerErr
	}
	a.ID = 7
	return nil
}

func (f *fakeAttendeeService) ListAttendees(ctx context.Context, eventID int64, params domain.OffsetParams) ([]*domain.Attendee, error) {
	f.lastEventID, f.lastParams = eventID, params
	return f.listResult, f.listErr
}
