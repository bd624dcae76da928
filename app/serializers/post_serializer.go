// Package serializers renders models as the JSON documents served by the API.
//
// A post is rendered with its id, title and body plus a comments array. The
// comments association is resolved lazily and slowly: PostSerializer waits
// CommentsDelay before reading them, standing in for a remote call. Callers
// that need several posts use SerializeConcurrently so the waits overlap.
package serializers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gazette/app/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultCommentsDelay is the wait applied before loading a post's comments.
const DefaultCommentsDelay = time.Second

var ErrNilPost = errors.New("cannot serialize a nil post")

// CommentLister loads the comments of one post.
type CommentLister interface {
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
}

// PostResource is the serialized form of a post.
type PostResource struct {
	ID       int               `json:"id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Comments []CommentResource `json:"comments"`
}

// PostSerializer renders posts together with their comments.
type PostSerializer struct {
	comments CommentLister
	delay    time.Duration
	comment  CommentSerializer
	log      zerolog.Logger
}

type Option func(*PostSerializer)

// WithCommentsDelay overrides DefaultCommentsDelay. Zero disables the wait.
func WithCommentsDelay(d time.Duration) Option {
	return func(s *PostSerializer) {
		if d >= 0 {
			s.delay = d
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *PostSerializer) {
		s.log = log
	}
}

// NewPostSerializer creates a serializer reading comments from comments.
func NewPostSerializer(comments CommentLister, opts ...Option) *PostSerializer {
	s := &PostSerializer{
		comments: comments,
		delay:    DefaultCommentsDelay,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CommentsDelay reports the configured association delay.
func (s *PostSerializer) CommentsDelay() time.Duration {
	return s.delay
}

// Serialize builds the resource for post, resolving its comments.
func (s *PostSerializer) Serialize(ctx context.Context, post *models.Post) (*PostResource, error) {
	if post == nil {
		return nil, ErrNilPost
	}

	comments, err := s.resolveComments(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("comments of post %d: %w", post.ID, err)
	}

	return &PostResource{
		ID:       post.ID,
		Title:    post.Title,
		Body:     post.Body,
		Comments: s.comment.SerializeAll(comments),
	}, nil
}

// ToJSON renders post as a JSON document.
func (s *PostSerializer) ToJSON(ctx context.Context, post *models.Post) ([]byte, error) {
	resource, err := s.Serialize(ctx, post)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resource)
}

// SerializeConcurrently renders every post on its own goroutine and waits
// for all of them. The result is keyed like the input. The first failure
// cancels the remaining work.
func (s *PostSerializer) SerializeConcurrently(ctx context.Context, posts map[string]*models.Post) (map[string]json.RawMessage, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(map[string]json.RawMessage, len(posts))

	for key, post := range posts {
		key, post := key, post
		g.Go(func() error {
			start := time.Now()
			data, err := s.ToJSON(gctx, post)
			if err != nil {
				return fmt.Errorf("serialize %s: %w", key, err)
			}
			s.log.Debug().Str("key", key).Dur("took", time.Since(start)).Msg("post serialized")

			mu.Lock()
			out[key] = data
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveComments is the slow association: it waits s.delay, then loads.
func (s *PostSerializer) resolveComments(ctx context.Context, post *models.Post) ([]*models.Comment, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return s.comments.ListByPost(ctx, post.ID)
}
