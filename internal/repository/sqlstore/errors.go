package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"eventmanagement/internal/domain"
)

// Postgres SQLSTATE codes.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// classify maps constraint violations from either driver onto domain errors, keeping the
// driver error in the chain. Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrDuplicateRegistration, err)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %w", domain.ErrEventNotFound, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		msg := liteErr.Error()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE constraint failed"):
			return fmt.Errorf("%w: %w", domain.ErrDuplicateRegistration, err)
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
			code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return fmt.Errorf("%w: %w", domain.ErrEventNotFound, err)
		}
	}
	return err
}
