package repositories

import (
	"context"
	"errors"
	"testing"

	"gazette/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		ctx := context.Background()
		repo := store.Comments

		post := &models.Post{Title: "post1", Body: "This is post1!"}
		require.NoError(t, store.Posts.Create(ctx, post))
		other := &models.Post{Title: "post2", Body: "This is post2!"}
		require.NoError(t, store.Posts.Create(ctx, other))

		t.Run("create and get comment", func(t *testing.T) {
			comment := &models.Comment{PostID: post.ID, Body: "This is a comment of post1"}

			require.NoError(t, repo.Create(ctx, comment))
			assert.Greater(t, comment.ID, 0)

			retrieved, err := repo.GetByID(ctx, comment.ID)
			require.NoError(t, err)
			assert.Equal(t, post.ID, retrieved.PostID)
			assert.Equal(t, "This is a comment of post1", retrieved.Body)
		})

		t.Run("create comment for missing post", func(t *testing.T) {
			err := repo.Create(ctx, &models.Comment{PostID: 999, Body: "orphan"})
			assert.True(t, errors.Is(err, ErrNotFound))
		})

		t.Run("update comment", func(t *testing.T) {
			comment := &models.Comment{PostID: post.ID, Body: "Original"}
			require.NoError(t, repo.Create(ctx, comment))

			comment.Body = "Updated content"
			require.NoError(t, repo.Update(ctx, comment))

			updated, err := repo.GetByID(ctx, comment.ID)
			require.NoError(t, err)
			assert.Equal(t, "Updated content", updated.Body)
		})

		t.Run("update comment under another post", func(t *testing.T) {
			comment := &models.Comment{PostID: post.ID, Body: "Stays put"}
			require.NoError(t, repo.Create(ctx, comment))

			moved := *comment
			moved.PostID = other.ID
			assert.Error(t, repo.Update(ctx, &moved))
		})

		t.Run("delete comment", func(t *testing.T) {
			comment := &models.Comment{PostID: post.ID, Body: "This comment will be deleted"}
			require.NoError(t, repo.Create(ctx, comment))

			require.NoError(t, repo.Delete(ctx, comment.ID))

			_, err := repo.GetByID(ctx, comment.ID)
			assert.True(t, errors.Is(err, ErrNotFound))

			err = repo.Delete(ctx, comment.ID)
			assert.True(t, errors.Is(err, ErrNotFound))
		})

		t.Run("list comments by post", func(t *testing.T) {
			for i := 0; i < 3; i++ {
				require.NoError(t, repo.Create(ctx, &models.Comment{PostID: other.ID, Body: "Content for list test"}))
			}

			comments, err := repo.ListByPost(ctx, other.ID)
			require.NoError(t, err)
			require.Len(t, comments, 3)
			for i, comment := range comments {
				assert.Equal(t, other.ID, comment.PostID)
				if i > 0 {
					assert.Greater(t, comment.ID, comments[i-1].ID)
				}
			}

			none, err := repo.ListByPost(ctx, 999)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	})
}
