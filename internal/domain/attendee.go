package domain

import "context"

// Attendee is a person registered for exactly one event.
// swagger:model Attendee
type Attendee struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	EventID int64  `json:"event_id" db:"event_id"`
}

// NewAttendee returns a new Attendee for eventID. ID is set by the repository on create.
func NewAttendee(eventID int64, name, email string) *Attendee {
	return &Attendee{
		Name:    name,
		Email:   email,
		EventID: eventID,
	}
}

// AttendeeRepository defines read access to attendees outside a registration.
type AttendeeRepository interface {
	// ListByEventID returns attendees of eventID ordered by id, applying skip then limit.
	ListByEventID(ctx context.Context, eventID int64, params OffsetParams) ([]*Attendee, error)
}

// RegistrationTx holds the store operations of a single registration. All calls made
// through one RegistrationTx share one database transaction.
type RegistrationTx interface {
	// LockEvent loads the event and holds it against concurrent registrations until
	// the transaction ends. Returns ErrEventNotFound when absent.
	LockEvent(ctx context.Context, eventID int64) (*Event, error)
	CountAttendees(ctx context.Context, eventID int64) (int, error)
	// GetAttendeeByEmail returns ErrNotFound when the email is not registered for eventID.
	GetAttendeeByEmail(ctx context.Context, eventID int64, email string) (*Attendee, error)
	CreateAttendee(ctx context.Context, attendee *Attendee) error
}

// RegistrationStore runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise; fn's error is returned unchanged.
type RegistrationStore interface {
	WithinRegistrationTx(ctx context.Context, fn func(ctx context.Context, tx RegistrationTx) error) error
}

// AttendeeService defines attendee registration and the paginated attendee query.
type AttendeeService interface {
	RegisterAttendee(ctx context.Context, attendee *Attendee) error
	ListAttendees(ctx context.Context, eventID int64, params OffsetParams) ([]*Attendee, error)
}

// Registration outcomes reported to RegistrationMetrics.
const (
	OutcomeCreated          = "created"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeDuplicate        = "duplicate"
	OutcomeEventNotFound    = "event_not_found"
	OutcomeError            = "error"
)

// RegistrationMetrics receives workflow counters.
type RegistrationMetrics interface {
	RecordRegistration(outcome string)
	RecordEventCreated()
}
