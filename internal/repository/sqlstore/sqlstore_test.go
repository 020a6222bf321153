package sqlstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"eventmanagement/internal/database"
	"eventmanagement/internal/domain"
)

var (
	eventCols    = []string{"id", "name", "location", "start_time", "end_time", "max_capacity"}
	attendeeCols = []string{"id", "name", "email", "event_id"}

	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// newMockDB returns a Postgres-flavoured DB backed by sqlmock.
func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return database.New(sqlx.NewDb(mockDB, "postgres"), database.Postgres), mock
}

// newSQLiteDB opens a migrated SQLite database in a temp dir.
func newSQLiteDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "events.db"), database.PoolConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx, testLogger))
	return db
}

func seedEvent(t *testing.T, db *database.DB, name string, start time.Time, capacity int) *domain.Event {
	t.Helper()
	e := domain.NewEvent(name, "Hall A", start, start.Add(2*time.Hour), capacity)
	require.NoError(t, NewEventRepository(db).Create(context.Background(), e))
	return e
}

func register(t *testing.T, db *database.DB, a *domain.Attendee) error {
	t.Helper()
	return NewRegistrationStore(db).WithinRegistrationTx(context.Background(), func(ctx context.Context, tx domain.RegistrationTx) error {
		return tx.CreateAttendee(ctx, a)
	})
}
