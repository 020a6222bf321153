package sqlstore

import (
	"context"

	"eventmanagement/internal/database"
	"eventmanagement/internal/domain"
)

type attendeeRepository struct {
	DB *database.DB
	q  queries
}

func NewAttendeeRepository(db *database.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
		q:  newQueries(db),
	}
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID int64, params domain.OffsetParams) ([]*domain.Attendee, error) {
	query, args, err := r.q.attendeesByEvent(eventID, params)
	if err != nil {
		return nil, err
	}
	attendees := make([]*domain.Attendee, 0)
	if err := r.DB.SelectContext(ctx, &attendees, query, args...); err != nil {
		return nil, err
	}
	return attendees, nil
}
