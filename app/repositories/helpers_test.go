package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// eachStore runs fn once per storage driver against a fresh store.
func eachStore(t *testing.T, fn func(t *testing.T, store *Store)) {
	t.Run("badger", func(t *testing.T) {
		store, err := OpenInMemory()
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		fn(t, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
		require.NoError(t, err)
		store := NewSQLiteStore(db)
		t.Cleanup(func() { store.Close() })
		fn(t, store)
	})
}
