package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name:    "valid comment",
			comment: &Comment{ID: 1, PostID: 1, Body: "This is a comment of post1", CreatedAt: now, UpdatedAt: now},
			wantErr: false,
		},
		{
			name:    "missing post",
			comment: &Comment{ID: 1, Body: "orphan", CreatedAt: now, UpdatedAt: now},
			wantErr: true,
		},
		{
			name:    "empty body",
			comment: &Comment{ID: 1, PostID: 1, CreatedAt: now, UpdatedAt: now},
			wantErr: true,
		},
		{
			name:    "body too long",
			comment: &Comment{ID: 1, PostID: 1, Body: strings.Repeat("a", 1001), CreatedAt: now, UpdatedAt: now},
			wantErr: true,
		},
		{
			name:    "zero creation time",
			comment: &Comment{ID: 1, PostID: 1, Body: "Valid content", UpdatedAt: now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{PostID: 1, Body: "Test Comment"}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.CreatedAt.IsZero())
	assert.False(t, comment.UpdatedAt.IsZero())
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{ID: 1, Body: "Test Comment"}

	t.Run("set valid post", func(t *testing.T) {
		post := &Post{ID: 7, Title: "post1"}

		err := comment.SetPost(post)
		assert.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, post, comment.Post)
	})

	t.Run("set nil post", func(t *testing.T) {
		err := comment.SetPost(nil)
		assert.Error(t, err)
	})
}
