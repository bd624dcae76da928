package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gazette/app/models"
)

// SQLitePostRepository implements PostRepository on the posts table
type SQLitePostRepository struct {
	db *sql.DB
}

// NewSQLitePostRepository expects a migrated database, see OpenSQLite
func NewSQLitePostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db}
}

const postColumns = "id, title, body, created_at, updated_at"

func scanPost(row scanner) (*models.Post, error) {
	var post models.Post
	var createdAt, updatedAt int64
	if err := row.Scan(&post.ID, &post.Title, &post.Body, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	post.CreatedAt = fromMillis(createdAt)
	post.UpdatedAt = fromMillis(updatedAt)
	return &post, nil
}

// Create inserts the post and sets its id
func (r *SQLitePostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO posts (title, body, created_at, updated_at) VALUES (?, ?, ?, ?)",
		post.Title, post.Body, toMillis(post.CreatedAt), toMillis(post.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = int(id)
	return nil
}

// GetByID retrieves a post by ID, without its comments
func (r *SQLitePostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return post, nil
}

// List retrieves a page of posts ordered by id
func (r *SQLitePostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Update updates an existing post
func (r *SQLitePostRepository) Update(ctx context.Context, post *models.Post) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE posts SET title = ?, body = ?, created_at = ?, updated_at = ? WHERE id = ?",
		post.Title, post.Body, toMillis(post.CreatedAt), toMillis(post.UpdatedAt), post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	return requireAffected(res)
}

// Delete deletes a post by ID. It fails while comments still reference it.
func (r *SQLitePostRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
