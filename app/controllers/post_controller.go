package controllers

import (
	"net/http"

	"gazette/app/models"
	"gazette/app/services"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing posts with their comments
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)

	posts, err := pc.postService.ListPosts(r.Context(), page, perPage)
	if err != nil {
		SendError(w, r, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts":    posts,
		"page":     page,
		"per_page": perPage,
	})
}

// Show renders a single post through the post serializer, so the
// response waits for the comments delay.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		SendError(w, r, err)
		return
	}

	data, err := pc.postService.SerializePost(r.Context(), id)
	if err != nil {
		SendError(w, r, err)
		return
	}
	sendRaw(w, http.StatusOK, data)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := decodeJSON(r, &post); err != nil {
		SendError(w, r, err)
		return
	}
	post.ID = 0
	post.Comments = nil

	if err := pc.postService.CreatePost(r.Context(), &post); err != nil {
		SendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles updating an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		SendError(w, r, err)
		return
	}

	var post models.Post
	if err := decodeJSON(r, &post); err != nil {
		SendError(w, r, err)
		return
	}
	post.ID = id
	post.Comments = nil

	if err := pc.postService.UpdatePost(r.Context(), &post); err != nil {
		SendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		SendError(w, r, err)
		return
	}

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		SendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Concurrent serializes the first two posts in parallel and reports how
// long it took.
func (pc *PostController) Concurrent(w http.ResponseWriter, r *http.Request) {
	result, err := pc.postService.ConcurrentSerialization(r.Context())
	if err != nil {
		SendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}
