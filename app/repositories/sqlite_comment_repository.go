package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gazette/app/models"
)

// SQLiteCommentRepository implements CommentRepository on the comments table
type SQLiteCommentRepository struct {
	db *sql.DB
}

// NewSQLiteCommentRepository expects a migrated database, see OpenSQLite
func NewSQLiteCommentRepository(db *sql.DB) *SQLiteCommentRepository {
	return &SQLiteCommentRepository{db: db}
}

const commentColumns = "id, post_id, body, created_at, updated_at"

func scanComment(row scanner) (*models.Comment, error) {
	var comment models.Comment
	var createdAt, updatedAt int64
	if err := row.Scan(&comment.ID, &comment.PostID, &comment.Body, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	comment.CreatedAt = fromMillis(createdAt)
	comment.UpdatedAt = fromMillis(updatedAt)
	return &comment, nil
}

// Create inserts the comment. The foreign key rejects unknown posts.
func (r *SQLiteCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (post_id, body, created_at, updated_at) VALUES (?, ?, ?, ?)",
		comment.PostID, comment.Body, toMillis(comment.CreatedAt), toMillis(comment.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "foreign key") {
			return fmt.Errorf("post %d: %w", comment.PostID, ErrNotFound)
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	comment.ID = int(id)
	return nil
}

// GetByID retrieves a comment by ID
func (r *SQLiteCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ?", id)
	comment, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return comment, nil
}

// ListByPost retrieves all comments for a post, oldest first
func (r *SQLiteCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE post_id = ? ORDER BY id", postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Update updates an existing comment. A comment cannot move between posts.
func (r *SQLiteCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE comments SET body = ?, created_at = ?, updated_at = ? WHERE id = ? AND post_id = ?",
		comment.Body, toMillis(comment.CreatedAt), toMillis(comment.UpdatedAt), comment.ID, comment.PostID,
	)
	if err != nil {
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}
	return requireAffected(res)
}

// Delete deletes a comment by ID
func (r *SQLiteCommentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return requireAffected(res)
}
