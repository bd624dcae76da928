package controllers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gazette/app/models"
	"gazette/app/repositories/mock"
	"gazette/app/serializers"
	"gazette/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *mux.Router
	posts    *mock.PostRepository
	comments *mock.CommentRepository
}

func setupTestEnv(t *testing.T, delay time.Duration) *testEnv {
	t.Helper()
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	serializer := serializers.NewPostSerializer(commentRepo, serializers.WithCommentsDelay(delay))

	pc := NewPostController(services.NewPostService(postRepo, commentRepo, serializer))
	cc := NewCommentController(services.NewCommentService(commentRepo, postRepo))

	router := mux.NewRouter()
	router.HandleFunc("/posts", pc.Index).Methods("GET")
	router.HandleFunc("/posts", pc.Create).Methods("POST")
	router.HandleFunc("/posts/concurrent", pc.Concurrent).Methods("GET")
	router.HandleFunc("/posts/{id}", pc.Show).Methods("GET")
	router.HandleFunc("/posts/{id}", pc.Edit).Methods("PUT")
	router.HandleFunc("/posts/{id}", pc.Delete).Methods("DELETE")
	router.HandleFunc("/posts/{postId}/comments", cc.Index).Methods("GET")
	router.HandleFunc("/posts/{postId}/comments", cc.Create).Methods("POST")
	router.HandleFunc("/comments/{id}", cc.Edit).Methods("PUT")
	router.HandleFunc("/comments/{id}", cc.Delete).Methods("DELETE")

	return &testEnv{router: router, posts: postRepo, comments: commentRepo}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seed stores post1 and post2 with one comment each.
func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for i, title := range []string{"post1", "post2"} {
		post := &models.Post{Title: title, Body: "This is " + title + "!"}
		require.NoError(t, e.posts.Create(ctx, post))
		require.Equal(t, i+1, post.ID)
		require.NoError(t, e.comments.Create(ctx, &models.Comment{PostID: post.ID, Body: "This is a comment of " + title}))
	}
}
