package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"gazette/app/config"
	"gazette/app/logger"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// ErrUnsupported is returned by operations the active driver cannot perform.
var ErrUnsupported = errors.New("operation not supported by storage driver")

// Store bundles the post and comment repositories of one storage driver.
type Store struct {
	Driver   string
	Posts    PostRepository
	Comments CommentRepository

	badger *badger.DB
	sql    *sql.DB
}

// Open opens the driver selected in cfg.
func Open(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		opts := badger.DefaultOptions(cfg.BadgerPath).
			WithLogger(logger.NewBadgerLogger(log)).
			WithNumVersionsToKeep(1)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger at %s: %w", cfg.BadgerPath, err)
		}
		return NewBadgerStore(db), nil
	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewBadgerStore wraps an already opened badger database.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Driver:   config.DriverBadger,
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
		badger:   db,
	}
}

// NewSQLiteStore wraps a migrated sqlite database.
func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{
		Driver:   config.DriverSQLite,
		Posts:    NewSQLitePostRepository(db),
		Comments: NewSQLiteCommentRepository(db),
		sql:      db,
	}
}

// OpenInMemory returns an empty badger store that lives only in memory.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return NewBadgerStore(db), nil
}

// SQL exposes the sqlite handle, nil for other drivers.
func (s *Store) SQL() *sql.DB {
	return s.sql
}

func (s *Store) Close() error {
	if s.badger != nil {
		return s.badger.Close()
	}
	if s.sql != nil {
		return s.sql.Close()
	}
	return nil
}

// Clear removes every post and comment.
func (s *Store) Clear(ctx context.Context) error {
	if s.badger != nil {
		return s.badger.DropAll()
	}

	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, table := range []string{"comments", "posts", "sqlite_sequence"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Backup writes a full badger backup to w.
func (s *Store) Backup(w io.Writer) error {
	if s.badger == nil {
		return ErrUnsupported
	}
	_, err := s.badger.Backup(w, 0)
	return err
}

// Restore loads a backup produced by Backup.
func (s *Store) Restore(r io.Reader) error {
	if s.badger == nil {
		return ErrUnsupported
	}
	return s.badger.Load(r, 16)
}
