package seeds

import (
	"context"
	"path/filepath"
	"testing"

	"gazette/app/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()

	db, err := repositories.OpenSQLite(ctx, filepath.Join(t.TempDir(), "seed.db"), zerolog.Nop())
	require.NoError(t, err)
	store := repositories.NewSQLiteStore(db)
	defer store.Close()

	result, err := Seed(ctx, store.Posts, store.Comments, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	require.Len(t, result.Posts, 2)
	require.Len(t, result.Comments, 2)

	posts, err := store.Posts.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "post1", posts[0].Title)
	assert.Equal(t, "This is post1!", posts[0].Body)
	assert.Equal(t, "post2", posts[1].Title)
	assert.Equal(t, "This is post2!", posts[1].Body)

	for i, post := range posts {
		comments, err := store.Comments.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, result.Comments[i].Body, comments[0].Body)
	}
	assert.Equal(t, "This is a comment of post1", result.Comments[0].Body)
	assert.Equal(t, "This is a comment of post2", result.Comments[1].Body)

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		again, err := Seed(ctx, store.Posts, store.Comments, zerolog.Nop())
		require.NoError(t, err)
		assert.True(t, again.Skipped)

		posts, err := store.Posts.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}

func TestSeedBadger(t *testing.T) {
	ctx := context.Background()
	store, err := repositories.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	result, err := Seed(ctx, store.Posts, store.Comments, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, result.Posts, 2)
}
