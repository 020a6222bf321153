package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

const createVersionTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT      NOT NULL,
		applied_at TIMESTAMP NOT NULL
	)`

type migration struct {
	version int
	name    string
	sql     string
}

// Migrate applies every embedded migration for db's driver that is not yet recorded in
// schema_migrations. Each migration runs in its own transaction.
func (db *DB) Migrate(ctx context.Context, logger *slog.Logger) error {
	migrations, err := loadMigrations(db.Driver)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	query, _, err := db.Builder().From("schema_migrations").Select("version").ToSQL()
	if err != nil {
		return fmt.Errorf("build applied versions query: %w", err)
	}
	var versions []int
	if err := db.SelectContext(ctx, &versions, query); err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}
	applied := make(map[int]struct{}, len(versions))
	for _, v := range versions {
		applied[v] = struct{}{}
	}

	for _, m := range migrations {
		if _, ok := applied[m.version]; ok {
			continue
		}
		start := time.Now()
		if err := db.apply(ctx, m); err != nil {
			return fmt.Errorf("migration %04d_%s: %w", m.version, m.name, err)
		}
		logger.InfoContext(ctx, "migration applied",
			"version", m.version,
			"name", m.name,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return nil
}

func (db *DB) apply(ctx context.Context, m migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(m.sql) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	record, args, err := db.Builder().
		Insert("schema_migrations").
		Prepared(true).
		Cols("version", "name", "applied_at").
		Vals(goqu.Vals{m.version, m.name, time.Now().UTC()}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build record query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}

func loadMigrations(driver Driver) ([]migration, error) {
	dir := path.Join("migrations", string(driver))
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", driver, err)
	}

	var out []migration
	for _, e := range entries {
		file := e.Name()
		prefix, rest, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
		if !ok {
			return nil, fmt.Errorf("migration %q: name must be <version>_<name>.sql", file)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %q: invalid version: %w", file, err)
		}
		raw, err := migrationsFS.ReadFile(path.Join(dir, file))
		if err != nil {
			return nil, err
		}
		out = append(out, migration{version: version, name: rest, sql: string(raw)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func splitStatements(sql string) []string {
	var out []string
	for _, stmt := range strings.Split(sql, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
