// Package routes wires controllers and middleware into the HTTP router.
package routes

import (
	"net/http"

	"gazette/app/config"
	"gazette/app/controllers"
	"gazette/app/errs"
	"gazette/app/middleware"
	"gazette/app/repositories"
	"gazette/app/serializers"
	"gazette/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SetupRoutes defines the application's routes on top of store and returns a router.
func SetupRoutes(store *repositories.Store, cfg *config.Config, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	serializer := serializers.NewPostSerializer(store.Comments,
		serializers.WithCommentsDelay(cfg.Serializer.CommentsDelay),
		serializers.WithLogger(log.With().Str("component", "serializer").Logger()),
	)
	postController := controllers.NewPostController(services.NewPostService(store.Posts, store.Comments, serializer))
	commentController := controllers.NewCommentController(services.NewCommentService(store.Comments, store.Posts))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","driver":"` + store.Driver + `"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Posts API endpoints; concurrent goes first so {id} does not shadow it
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/concurrent", postController.Concurrent).Methods("GET")
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Edit).Methods("PUT")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")

	// mux skips router middleware for these, so they set their own headers
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controllers.SendError(w, r, errs.NewNotFoundError("No route for "+r.URL.Path))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controllers.SendError(w, r, errs.New(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	return router
}
