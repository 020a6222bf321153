package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanagement/internal/domain"
)

func TestAttendeeRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    int
		wantErr bool
	}{
		{
			name: "rows",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT "id", "name", "email", "event_id" FROM "attendees" WHERE \("event_id" = \$1\) ORDER BY "id" ASC LIMIT`).
					WillReturnRows(sqlmock.NewRows(attendeeCols).
						AddRow(1, "Ann", "ann@example.com", 4).
						AddRow(2, "Bob", "bob@example.com", 4))
			},
			want: 2,
		},
		{
			name: "empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "attendees"`).WillReturnRows(sqlmock.NewRows(attendeeCols))
			},
			want: 0,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "attendees"`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.mock(mock)

			list, err := NewAttendeeRepository(db).ListByEventID(ctx, 4, domain.DefaultOffsetParams())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Len(t, list, tt.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_Pages_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	e := seedEvent(t, db, "Launch", time.Now().Add(time.Hour), 10)
	other := seedEvent(t, db, "Other", time.Now().Add(time.Hour), 10)

	for i := range 7 {
		require.NoError(t, register(t, db, domain.NewAttendee(e.ID, fmt.Sprintf("user%d", i), fmt.Sprintf("u%d@example.com", i))))
	}
	require.NoError(t, register(t, db, domain.NewAttendee(other.ID, "x", "u0@example.com")))

	repo := NewAttendeeRepository(db)
	all, err := repo.ListByEventID(ctx, e.ID, domain.OffsetParams{Limit: domain.MaxLimit})
	require.NoError(t, err)
	require.Len(t, all, 7)

	var paged []*domain.Attendee
	for skip := 0; ; skip += 3 {
		page, err := repo.ListByEventID(ctx, e.ID, domain.OffsetParams{Skip: skip, Limit: 3})
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		paged = append(paged, page...)
	}
	assert.Equal(t, all, paged)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	beyond, err := repo.ListByEventID(ctx, e.ID, domain.OffsetParams{Skip: 50, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
