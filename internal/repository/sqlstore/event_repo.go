package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventmanagement/internal/database"
	"eventmanagement/internal/domain"
)

type eventRepository struct {
	DB *database.DB
	q  queries
}

func NewEventRepository(db *database.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
		q:  newQueries(db),
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query, args, err := r.q.insertEvent(e)
	if err != nil {
		return err
	}
	id, err := r.q.insertReturningID(ctx, r.DB, query, args)
	if err != nil {
		return classify(err)
	}
	e.ID = id
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query, args, err := r.q.eventByID(id, false)
	if err != nil {
		return nil, err
	}
	e := &domain.Event{}
	if err := r.DB.GetContext(ctx, e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time, params domain.OffsetParams) ([]*domain.Event, error) {
	query, args, err := r.q.upcomingEvents(now, params)
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0)
	if err := r.DB.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, err
	}
	return events, nil
}
