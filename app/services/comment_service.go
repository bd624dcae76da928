package services

import (
	"context"
	"fmt"

	"gazette/app/models"
	"gazette/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment creates a new comment on an existing post
func (s *CommentService) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: comment: %w", ErrInvalid, err)
	}

	if _, err := s.postRepo.GetByID(ctx, comment.PostID); err != nil {
		return fmt.Errorf("post %d: %w", comment.PostID, err)
	}

	return s.commentRepo.Create(ctx, comment)
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	return s.commentRepo.ListByPost(ctx, postID)
}

// UpdateComment updates the body of an existing comment. A zero PostID
// means "keep the current post"; any other value must match it.
func (s *CommentService) UpdateComment(ctx context.Context, comment *models.Comment) error {
	existing, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return err
	}
	if comment.PostID == 0 {
		comment.PostID = existing.PostID
	}
	if existing.PostID != comment.PostID {
		return fmt.Errorf("%w: comment %d does not belong to post %d", ErrInvalid, comment.ID, comment.PostID)
	}

	comment.CreatedAt = existing.CreatedAt
	comment.BeforeUpdate()
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: comment: %w", ErrInvalid, err)
	}

	return s.commentRepo.Update(ctx, comment)
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(ctx context.Context, id int) error {
	return s.commentRepo.Delete(ctx, id)
}
