package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post is a blog post. It has many comments.
type Post struct {
	ID        int        `json:"id" validate:"gte=0"`
	Title     string     `json:"title" validate:"required,max=255"`
	Body      string     `json:"body" validate:"max=65535"`
	CreatedAt time.Time  `json:"created_at" validate:"required"`
	UpdatedAt time.Time  `json:"updated_at" validate:"required"`
	Comments  []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment belongs to a post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	Body      string    `json:"body" validate:"required,max=1000"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	UpdatedAt time.Time `json:"updated_at" validate:"required"`
	Post      *Post     `json:"-" validate:"-"`
}
