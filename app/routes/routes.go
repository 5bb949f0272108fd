package routes

import (
	"pressroom/app/controllers"
	"pressroom/app/events"
	"pressroom/app/middleware"
	"pressroom/app/pubsub"
	"pressroom/app/services"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(svc *services.Services, bus *pubsub.Bus[events.Event]) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	userController := controllers.NewUserController(svc.Users)
	postController := controllers.NewPostController(svc.Posts)
	commentController := controllers.NewCommentController(svc.Comments)
	streamController := controllers.NewStreamController(svc.Posts, bus)

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Users API endpoints
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("", userController.Index).Methods("GET")
	users.HandleFunc("", userController.Create).Methods("POST")
	users.HandleFunc("/{id}", userController.Show).Methods("GET")
	users.HandleFunc("/{id}", userController.Edit).Methods("PUT")
	users.HandleFunc("/{id}", userController.Delete).Methods("DELETE")

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/stream", streamController.Posts).Methods("GET")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	posts.HandleFunc("/{postId}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{postId}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{postId}/comments/stream", streamController.PostComments).Methods("GET")
	api.HandleFunc("/comments/{id}", commentController.Edit).Methods("PUT")
	api.HandleFunc("/comments/{id}", commentController.Delete).Methods("DELETE")

	return router
}
