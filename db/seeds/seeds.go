// Package seeds loads the demo data: two posts with one comment each.
package seeds

import (
	"context"
	"fmt"

	"gazette/app/models"
	"gazette/app/repositories"

	"github.com/rs/zerolog"
)

type seedPost struct {
	Title   string
	Body    string
	Comment string
}

var defaultPosts = []seedPost{
	{Title: "post1", Body: "This is post1!", Comment: "This is a comment of post1"},
	{Title: "post2", Body: "This is post2!", Comment: "This is a comment of post2"},
}

// Result reports what Seed did.
type Result struct {
	Posts    []*models.Post
	Comments []*models.Comment
	Skipped  bool
}

// Seed creates the demo posts and comments. A store that already holds
// posts is left untouched.
func Seed(ctx context.Context, posts repositories.PostRepository, comments repositories.CommentRepository, log zerolog.Logger) (*Result, error) {
	existing, err := posts.List(ctx, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("check existing posts: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Msg("database already seeded, skipping")
		return &Result{Skipped: true}, nil
	}

	result := &Result{}
	for _, sp := range defaultPosts {
		post := &models.Post{Title: sp.Title, Body: sp.Body}
		if err := posts.Create(ctx, post); err != nil {
			return result, fmt.Errorf("create %s: %w", sp.Title, err)
		}
		result.Posts = append(result.Posts, post)

		comment := &models.Comment{Body: sp.Comment}
		if err := comment.SetPost(post); err != nil {
			return result, err
		}
		if err := comments.Create(ctx, comment); err != nil {
			return result, fmt.Errorf("create comment of %s: %w", sp.Title, err)
		}
		result.Comments = append(result.Comments, comment)
	}

	log.Info().Int("posts", len(result.Posts)).Int("comments", len(result.Comments)).Msg("database seeded")
	return result, nil
}
