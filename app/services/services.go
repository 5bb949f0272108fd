// Package services implements the mutation engine: the nine create, update
// and delete operations over users, posts and comments. Each operation
// validates before touching the store, keeps referential integrity through
// cascading deletes, and publishes the lifecycle event the mutation implies.
package services

import (
	"errors"
	"sync"

	"pressroom/app/events"
	"pressroom/app/pubsub"
	"pressroom/app/repositories"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateEmail is returned when a create or update would give two
	// users the same email.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidReference is returned when a new post or comment names a
	// nonexistent author, or a new comment names a nonexistent or
	// unpublished post.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Deps are the collaborators every service shares: the three repositories
// over the common store, the notification bus, and the unique-ID generator.
type Deps struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Bus      *pubsub.Bus[events.Event]
	NewID    func() string
}

// Services bundles the per-entity services. All mutations across the bundle
// hold one mutex, so each runs to completion without interleaving with
// another: cascades are atomic with their root delete, and a publish always
// follows its store commit inside the same critical section.
type Services struct {
	mu sync.Mutex

	Users    *UserService
	Posts    *PostService
	Comments *CommentService
}

// New wires the service bundle. A nil NewID defaults to random UUIDs.
func New(deps Deps) *Services {
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	s := &Services{}
	s.Users = &UserService{deps: deps, mu: &s.mu}
	s.Posts = &PostService{deps: deps, mu: &s.mu}
	s.Comments = &CommentService{deps: deps, mu: &s.mu}
	return s
}
