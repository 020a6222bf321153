package domain

import (
	"context"
	"time"
)

// Event represents a scheduled event with a fixed attendee capacity.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location" db:"location"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	EndTime     time.Time `json:"end_time" db:"end_time"`
	MaxCapacity int       `json:"max_capacity" db:"max_capacity"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name, location string, startTime, endTime time.Time, maxCapacity int) *Event {
	return &Event{
		Name:        name,
		Location:    location,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: maxCapacity,
	}
}

// IsUpcoming reports whether the event starts at or after now.
func (e *Event) IsUpcoming(now time.Time) bool {
	return !e.StartTime.Before(now)
}

// IsFull reports whether registered attendees have reached MaxCapacity.
func (e *Event) IsFull(registered int) bool {
	return registered >= e.MaxCapacity
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// ListUpcoming returns events with start_time >= now ordered by start_time, id.
	ListUpcoming(ctx context.Context, now time.Time, params OffsetParams) ([]*Event, error)
}

// EventService defines event creation and the upcoming-events query.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListUpcomingEvents(ctx context.Context, params OffsetParams) ([]*Event, error)
}
