package controllers

import (
	"net/http"

	"gazette/app/models"
	"gazette/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index lists the comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		SendError(w, r, err)
		return
	}

	comments, err := cc.commentService.ListPostComments(r.Context(), postID)
	if err != nil {
		SendError(w, r, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create adds a comment to the post named in the path
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		SendError(w, r, err)
		return
	}

	var comment models.Comment
	if err := decodeJSON(r, &comment); err != nil {
		SendError(w, r, err)
		return
	}
	comment.ID = 0
	comment.PostID = postID

	if err := cc.commentService.CreateComment(r.Context(), &comment); err != nil {
		SendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Edit updates the body of a comment
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		SendError(w, r, err)
		return
	}

	var comment models.Comment
	if err := decodeJSON(r, &comment); err != nil {
		SendError(w, r, err)
		return
	}
	comment.ID = id

	if err := cc.commentService.UpdateComment(r.Context(), &comment); err != nil {
		SendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Delete removes a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		SendError(w, r, err)
		return
	}

	if err := cc.commentService.DeleteComment(r.Context(), id); err != nil {
		SendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
