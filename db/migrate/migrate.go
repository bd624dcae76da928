// Package migrate applies embedded SQL migrations to a sqlite database.
//
// Every file is applied at most once; applied names are recorded in the
// schema_migrations table together with the time they ran.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const migrationTable = "schema_migrations"

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one SQL file and whether it has run.
type Migration struct {
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Apply runs every pending migration found in migrationFS, in name order.
// It returns the names it applied.
func Apply(ctx context.Context, db *sql.DB, migrationFS fs.FS, logger zerolog.Logger) ([]string, error) {
	if db == nil {
		return nil, errors.New("sql db is required")
	}

	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}

	files, err := sqlFiles(migrationFS)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, file := range files {
		done, err := isApplied(ctx, db, file)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}

		if err := applyOne(ctx, db, file, ExtractUp(string(content))); err != nil {
			return applied, err
		}
		logger.Info().Str("migration", file).Msg("applied migration")
		applied = append(applied, file)
	}

	if len(applied) == 0 {
		logger.Debug().Int("version", len(files)).Msg("database schema up to date")
	} else {
		logger.Info().Int("from", len(files)-len(applied)).Int("to", len(files)).Msg("migrated database schema")
	}
	return applied, nil
}

// Status lists every known migration with its applied state.
func Status(ctx context.Context, db *sql.DB, migrationFS fs.FS) ([]Migration, error) {
	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}

	files, err := sqlFiles(migrationFS)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT name, applied_at FROM "+migrationTable)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	appliedAt := make(map[string]time.Time)
	for rows.Next() {
		var name string
		var millis int64
		if err := rows.Scan(&name, &millis); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		appliedAt[name] = time.UnixMilli(millis).UTC()
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Migration, 0, len(files))
	for _, file := range files {
		at, ok := appliedAt[file]
		out = append(out, Migration{Name: file, Applied: ok, AppliedAt: at})
	}
	return out, nil
}

// ExtractUp returns the SQL of the Up section, or the whole file when it
// carries no markers.
func ExtractUp(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}
	return nil
}

func sqlFiles(migrationFS fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func applyOne(ctx context.Context, db *sql.DB, name, upSQL string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}

	if strings.TrimSpace(upSQL) != "" {
		if _, err := tx.ExecContext(ctx, upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
		name, time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}
	return nil
}

func isApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var found int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM "+migrationTable+" WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
