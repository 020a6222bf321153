package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventmanagement/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID     map[int64]*domain.Event
	nextID   int64
	err      error // if set, every call returns this error
	lastNow  time.Time
	lastPage domain.OffsetParams
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEventNotFound
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, now time.Time, params domain.OffsetParams) ([]*domain.Event, error) {
	f.lastNow, f.lastPage = now, params
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for id := int64(1); id < f.nextID; id++ {
		if e, ok := f.byID[id]; ok && e.IsUpcoming(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeRegistrationStore keeps attendees in memory; a mutex stands in for the transaction.
type fakeRegistrationStore struct {
	mu        sync.Mutex
	events    *fakeEventRepo
	attendees []*domain.Attendee
	nextID    int64
	failOn    string // name of the RegistrationTx call that returns errStore
}

var errStore = errors.New("connection reset")

func newFakeRegistrationStore(events *fakeEventRepo) *fakeRegistrationStore {
	return &fakeRegistrationStore{events: events, nextID: 1}
}

func (s *fakeRegistrationStore) WithinRegistrationTx(ctx context.Context, fn func(ctx context.Context, tx domain.RegistrationTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &fakeTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.attendees = append(s.attendees, tx.pending...)
	return nil
}

func (s *fakeRegistrationStore) ListByEventID(ctx context.Context, eventID int64, params domain.OffsetParams) ([]*domain.Attendee, error) {
	if s.failOn == "ListByEventID" {
		return nil, errStore
	}
	var out []*domain.Attendee
	for _, a := range s.attendees {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	if params.Skip >= len(out) {
		return nil, nil
	}
	out = out[params.Skip:]
	if !params.Unbounded() && params.Limit < len(out) {
		out = out[:params.Limit]
	}
	return out, nil
}

type fakeTx struct {
	store   *fakeRegistrationStore
	pending []*domain.Attendee
}

func (t *fakeTx) LockEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	if t.store.failOn == "LockEvent" {
		return nil, errStore
	}
	return t.store.events.GetByID(ctx, eventID)
}

func (t *fakeTx) CountAttendees(ctx context.Context, eventID int64) (int, error) {
	if t.store.failOn == "CountAttendees" {
		return 0, errStore
	}
	n := 0
	for _, a := range t.store.attendees {
		if a.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) GetAttendeeByEmail(ctx context.Context, eventID int64, email string) (*domain.Attendee, error) {
	if t.store.failOn == "GetAttendeeByEmail" {
		return nil, errStore
	}
	for _, a := range t.store.attendees {
		if a.EventID == eventID && a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *fakeTx) CreateAttendee(ctx context.Context, a *domain.Attendee) error {
	if t.store.failOn == "CreateAttendee" {
		return errStore
	}
	a.ID = t.store.nextID
	t.store.nextID++
	t.pending = append(t.pending, a)
	return nil
}

type fakeMetrics struct {
	mu            sync.Mutex
	registrations map[string]int
	eventsCreated int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{registrations: make(map[string]int)}
}

func (m *fakeMetrics) RecordRegistration(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[outcome]++
}

func (m *fakeMetrics) RecordEventCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsCreated++
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) SendRegistrationConfirmation(ctx context.Context, event *domain.Event, attendee *domain.Attendee) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, attendee.Email)
	return nil
}
