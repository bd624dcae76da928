package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gazette/app/models"
	"gazette/app/repositories"
	"gazette/app/serializers"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	serializer  *serializers.PostSerializer
}

// ConcurrentResult is the outcome of ConcurrentSerialization.
type ConcurrentResult struct {
	Posts   map[string]json.RawMessage `json:"posts"`
	Elapsed time.Duration              `json:"-"`
}

// MarshalJSON adds elapsed_ms next to the posts.
func (r ConcurrentResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Posts     map[string]json.RawMessage `json:"posts"`
		ElapsedMS int64                      `json:"elapsed_ms"`
	}{r.Posts, r.Elapsed.Milliseconds()})
}

// NewPostService creates a new PostService. A nil serializer gets the
// default one, reading comments from commentRepo.
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, serializer *serializers.PostSerializer) *PostService {
	if serializer == nil {
		serializer = serializers.NewPostSerializer(commentRepo)
	}
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		serializer:  serializer,
	}
}

// CreatePost creates a new blog post with validation
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: post: %w", ErrInvalid, err)
	}

	return s.postRepo.Create(ctx, post)
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachComments(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts retrieves a page of posts, each with its comments
func (s *PostService) ListPosts(ctx context.Context, page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	offset := (page - 1) * perPage
	posts, err := s.postRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if err := s.attachComments(ctx, post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// UpdatePost updates title and body of an existing post
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post) error {
	existing, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}

	post.CreatedAt = existing.CreatedAt
	post.BeforeUpdate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: post: %w", ErrInvalid, err)
	}

	return s.postRepo.Update(ctx, post)
}

// DeletePost deletes a post and all its comments. Comments go first so
// the comments.post_id foreign key never dangles.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get comments: %w", err)
	}

	for _, comment := range comments {
		if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment %d: %w", comment.ID, err)
		}
	}

	return s.postRepo.Delete(ctx, id)
}

// SerializePost renders one post through the post serializer
func (s *PostService) SerializePost(ctx context.Context, id int) (json.RawMessage, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.serializer.ToJSON(ctx, post)
}

// ConcurrentSerialization fetches the first and second posts and
// serializes them on two goroutines. The elapsed time stays close to one
// comments delay instead of two.
func (s *PostService) ConcurrentSerialization(ctx context.Context) (*ConcurrentResult, error) {
	posts, err := s.postRepo.List(ctx, 2, 0)
	if err != nil {
		return nil, err
	}
	if len(posts) < 2 {
		return nil, fmt.Errorf("need two posts, found %d: %w", len(posts), repositories.ErrNotFound)
	}

	start := time.Now()
	out, err := s.serializer.SerializeConcurrently(ctx, map[string]*models.Post{
		"first":  posts[0],
		"second": posts[1],
	})
	if err != nil {
		return nil, err
	}

	return &ConcurrentResult{Posts: out, Elapsed: time.Since(start)}, nil
}

func (s *PostService) attachComments(ctx context.Context, post *models.Post) error {
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return fmt.Errorf("failed to get comments for post %d: %w", post.ID, err)
	}

	post.Comments = nil
	for _, comment := range comments {
		if err := post.AddComment(comment); err != nil {
			return err
		}
	}
	return nil
}
