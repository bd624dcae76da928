package service

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv points every storage path at a temp dir.
func setupTestEnv(t *testing.T, driver string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GAZETTE_STORAGE_DRIVER", driver)
	t.Setenv("GAZETTE_STORAGE_BADGER_PATH", filepath.Join(dir, "badger"))
	t.Setenv("GAZETTE_STORAGE_SQLITE_PATH", filepath.Join(dir, "gazette.db"))
	t.Setenv("GAZETTE_STORAGE_BACKUP_DIR", filepath.Join(dir, "backups"))
	t.Setenv("GAZETTE_SERIALIZER_COMMENTS_DELAY", "20ms")
	t.Setenv("GAZETTE_LOG_LEVEL", "error")
	return dir
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	assumeYes = false
	migrateStatus = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	setupTestEnv(t, "badger")
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gazette version test-version-1.0.0")
}

func TestInvalidConfig(t *testing.T) {
	setupTestEnv(t, "postgres")

	_, err := run(t, "", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestSeedAndSerialize(t *testing.T) {
	for _, driver := range []string{"badger", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			setupTestEnv(t, driver)

			out, err := run(t, "", "serialize")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "gazette seed")

			out, err = run(t, "", "seed")
			require.NoError(t, err)
			assert.Contains(t, out, "Seeded 2 posts and 2 comments")

			out, err = run(t, "", "seed")
			require.NoError(t, err)
			assert.Contains(t, out, "nothing seeded")

			out, err = run(t, "", "serialize")
			require.NoError(t, err)
			assert.Contains(t, out, "first:")
			assert.Contains(t, out, `"title": "post1"`)
			assert.Contains(t, out, "second:")
			assert.Contains(t, out, `"body": "This is a comment of post2"`)
			assert.Contains(t, out, "Serialized 2 posts in")
		})
	}
}

func TestMigrateCmd(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		setupTestEnv(t, "sqlite")

		out, err := run(t, "", "migrate", "--status")
		require.NoError(t, err)
		assert.Contains(t, out, "20180803084303_create_comments.sql")
		assert.Contains(t, out, "pending")

		out, err = run(t, "", "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "Applied 20180803084235_create_posts.sql")
		assert.Contains(t, out, "Applied 20180803084303_create_comments.sql")

		out, err = run(t, "", "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "up to date")

		out, err = run(t, "", "migrate", "--status")
		require.NoError(t, err)
		assert.NotContains(t, out, "pending")
	})

	t.Run("badger", func(t *testing.T) {
		setupTestEnv(t, "badger")

		out, err := run(t, "", "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "no schema to migrate")
	})
}

func TestBackupAndRestore(t *testing.T) {
	dir := setupTestEnv(t, "badger")

	_, err := run(t, "", "seed")
	require.NoError(t, err)

	out, err := run(t, "", "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up successfully")

	files, err := filepath.Glob(filepath.Join(dir, "backups", "backup_*.db"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	t.Run("declining keeps the data", func(t *testing.T) {
		out, err := run(t, "n\n", "restore", files[0])
		require.NoError(t, err)
		assert.Contains(t, out, "Operation cancelled")
	})

	t.Run("restore after clean", func(t *testing.T) {
		out, err := run(t, "", "clean", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Database cleaned successfully")

		out, err = run(t, "", "restore", files[0])
		require.NoError(t, err)
		assert.Contains(t, out, "Database restored successfully")

		out, err = run(t, "", "serialize")
		require.NoError(t, err)
		assert.Contains(t, out, `"title": "post2"`)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "", "restore", filepath.Join(dir, "nope.db"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.db")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))

		_, err := run(t, "", "restore", empty)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("requires a file argument", func(t *testing.T) {
		_, err := run(t, "", "restore")
		assert.Error(t, err)
	})
}

func TestBackupUnsupportedOnSQLite(t *testing.T) {
	dir := setupTestEnv(t, "sqlite")

	_, err := run(t, "", "backup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")

	files, _ := filepath.Glob(filepath.Join(dir, "backups", "*"))
	assert.Empty(t, files)
}

func TestCleanCmd(t *testing.T) {
	setupTestEnv(t, "sqlite")

	_, err := run(t, "", "seed")
	require.NoError(t, err)

	out, err := run(t, "N\n", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")

	out, err = run(t, "y\n", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleaned successfully")

	out, err = run(t, "", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 2 posts")
}
