package serializers

import (
	"time"

	"gazette/app/models"
)

// CommentResource is the serialized form of a comment.
type CommentResource struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentSerializer renders comments. It holds no state.
type CommentSerializer struct{}

func (CommentSerializer) Serialize(c *models.Comment) CommentResource {
	return CommentResource{
		ID:        c.ID,
		PostID:    c.PostID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// SerializeAll never returns nil so an empty association encodes as [].
func (cs CommentSerializer) SerializeAll(comments []*models.Comment) []CommentResource {
	out := make([]CommentResource, 0, len(comments))
	for _, c := range comments {
		if c == nil {
			continue
		}
		out = append(out, cs.Serialize(c))
	}
	return out
}
