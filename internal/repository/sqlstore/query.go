package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"eventmanagement/internal/database"
	"eventmanagement/internal/domain"
)

const (
	tableEvents    = "events"
	tableAttendees = "attendees"

	colID          = "id"
	colName        = "name"
	colLocation    = "location"
	colStartTime   = "start_time"
	colEndTime     = "end_time"
	colMaxCapacity = "max_capacity"
	colEmail       = "email"
	colEventID     = "event_id"
)

var (
	eventColumns    = []any{colID, colName, colLocation, colStartTime, colEndTime, colMaxCapacity}
	attendeeColumns = []any{colID, colName, colEmail, colEventID}

	errBuildQuery = errors.New("building query failed")
)

// queries builds the SQL shared by repositories and registration transactions.
type queries struct {
	builder goqu.DialectWrapper
	driver  database.Driver
}

func newQueries(db *database.DB) queries {
	return queries{builder: db.Builder(), driver: db.Driver}
}

// returning reports whether INSERT ... RETURNING is used to read generated ids.
func (q queries) returning() bool {
	return q.driver == database.Postgres
}

func toSQL(ds interface {
	ToSQL() (string, []any, error)
}) (string, []any, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, errors.Join(errBuildQuery, err)
	}
	return query, args, nil
}

func (q queries) eventByID(id int64, lock bool) (string, []any, error) {
	ds := q.builder.From(tableEvents).
		Prepared(true).
		Select(eventColumns...).
		Where(goqu.C(colID).Eq(id))
	if lock && q.driver == database.Postgres {
		ds = ds.ForUpdate(exp.Wait)
	}
	return toSQL(ds)
}

func (q queries) upcomingEvents(now time.Time, params domain.OffsetParams) (string, []any, error) {
	ds := q.builder.From(tableEvents).
		Prepared(true).
		Select(eventColumns...).
		Where(goqu.C(colStartTime).Gte(now.UTC())).
		Order(goqu.C(colStartTime).Asc(), goqu.C(colID).Asc())
	return toSQL(paginate(ds, params))
}

func (q queries) attendeesByEvent(eventID int64, params domain.OffsetParams) (string, []any, error) {
	ds := q.builder.From(tableAttendees).
		Prepared(true).
		Select(attendeeColumns...).
		Where(goqu.C(colEventID).Eq(eventID)).
		Order(goqu.C(colID).Asc())
	return toSQL(paginate(ds, params))
}

func (q queries) countAttendees(eventID int64) (string, []any, error) {
	return toSQL(q.builder.From(tableAttendees).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colEventID).Eq(eventID)))
}

func (q queries) attendeeByEmail(eventID int64, email string) (string, []any, error) {
	return toSQL(q.builder.From(tableAttendees).
		Prepared(true).
		Select(attendeeColumns...).
		Where(goqu.C(colEventID).Eq(eventID), goqu.C(colEmail).Eq(email)))
}

func (q queries) insertEvent(e *domain.Event) (string, []any, error) {
	ds := q.builder.Insert(tableEvents).
		Prepared(true).
		Cols(colName, colLocation, colStartTime, colEndTime, colMaxCapacity).
		Vals(goqu.Vals{e.Name, e.Location, e.StartTime.UTC(), e.EndTime.UTC(), e.MaxCapacity})
	if q.returning() {
		ds = ds.Returning(colID)
	}
	return toSQL(ds)
}

func (q queries) insertAttendee(a *domain.Attendee) (string, []any, error) {
	ds := q.builder.Insert(tableAttendees).
		Prepared(true).
		Cols(colName, colEmail, colEventID).
		Vals(goqu.Vals{a.Name, a.Email, a.EventID})
	if q.returning() {
		ds = ds.Returning(colID)
	}
	return toSQL(ds)
}

// paginate applies OFFSET then LIMIT. SQLite rejects OFFSET without LIMIT, so an
// unbounded page with a skip uses the largest representable limit.
func paginate(ds *goqu.SelectDataset, params domain.OffsetParams) *goqu.SelectDataset {
	switch {
	case !params.Unbounded():
		ds = ds.Limit(uint(params.Limit))
	case params.Skip > 0:
		ds = ds.Limit(math.MaxInt64)
	}
	if params.Skip > 0 {
		ds = ds.Offset(uint(params.Skip))
	}
	return ds
}

// insertReturningID runs an insert built by insertEvent/insertAttendee and returns the
// generated id.
func (q queries) insertReturningID(ctx context.Context, ext sqlx.ExtContext, query string, args []any) (int64, error) {
	if q.returning() {
		var id int64
		if err := sqlx.GetContext(ctx, ext, &id, query, args...); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}
