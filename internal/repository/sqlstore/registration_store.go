package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"eventmanagement/internal/database"
	"eventmanagement/internal/domain"
)

type registrationStore struct {
	DB *database.DB
	q  queries
}

// NewRegistrationStore returns a RegistrationStore whose transactions lock the event row
// (Postgres) or rely on the single-connection pool (SQLite) so capacity checks and the
// insert cannot interleave with another registration for the same event.
func NewRegistrationStore(db *database.DB) domain.RegistrationStore {
	return &registrationStore{
		DB: db,
		q:  newQueries(db),
	}
}

func (s *registrationStore) WithinRegistrationTx(ctx context.Context, fn func(ctx context.Context, tx domain.RegistrationTx) error) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &registrationTx{tx: tx, q: s.q}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", classify(err))
	}
	return nil
}

type registrationTx struct {
	tx *sqlx.Tx
	q  queries
}

func (t *registrationTx) LockEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	query, args, err := t.q.eventByID(eventID, true)
	if err != nil {
		return nil, err
	}
	e := &domain.Event{}
	if err := t.tx.GetContext(ctx, e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (t *registrationTx) CountAttendees(ctx context.Context, eventID int64) (int, error) {
	query, args, err := t.q.countAttendees(eventID)
	if err != nil {
		return 0, err
	}
	var n int
	if err := t.tx.GetContext(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *registrationTx) GetAttendeeByEmail(ctx context.Context, eventID int64, email string) (*domain.Attendee, error) {
	query, args, err := t.q.attendeeByEmail(eventID, email)
	if err != nil {
		return nil, err
	}
	a := &domain.Attendee{}
	if err := t.tx.GetContext(ctx, a, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (t *registrationTx) CreateAttendee(ctx context.Context, a *domain.Attendee) error {
	query, args, err := t.q.insertAttendee(a)
	if err != nil {
		return err
	}
	id, err := t.q.insertReturningID(ctx, t.tx, query, args)
	if err != nil {
		return classify(err)
	}
	a.ID = id
	return nil
}
