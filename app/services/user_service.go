package services

import (
	"errors"
	"fmt"
	"sync"

	"pressroom/app/models"
	"pressroom/app/repositories"
)

// UserService handles user mutations. User changes publish no events; there
// is no user topic.
type UserService struct {
	deps Deps
	mu   *sync.Mutex
}

// CreateUser creates a new user with a generated ID. Fails with
// ErrDuplicateEmail if any user already holds the email.
func (s *UserService) CreateUser(in *models.CreateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.emailAvailable(in.Email, ""); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:    s.deps.NewID(),
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	}
	if err := s.deps.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	return s.deps.Users.GetByID(id)
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers() ([]*models.User, error) {
	return s.deps.Users.List()
}

// UpdateUser overwrites the user's name and email, and age when supplied.
// Fails with ErrDuplicateEmail if a different user holds the new email.
func (s *UserService) UpdateUser(id string, in *models.UpdateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.deps.Users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.emailAvailable(in.Email, id); err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	if in.Age != nil {
		user.Age = in.Age
	}
	if err := s.deps.Users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and cascades: every post they authored, every
// comment on those posts, and every remaining comment they authored. The
// cascade runs inside the mutation lock, so no reader of the mutation
// surface observes a partial delete.
func (s *UserService) DeleteUser(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.deps.Users.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.deps.Users.Delete(id); err != nil {
		return nil, err
	}
	removedPosts, err := s.deps.Posts.DeleteByAuthor(id)
	if err != nil {
		return nil, err
	}
	for _, post := range removedPosts {
		if _, err := s.deps.Comments.DeleteByPost(post.ID); err != nil {
			return nil, err
		}
	}
	if _, err := s.deps.Comments.DeleteByAuthor(id); err != nil {
		return nil, err
	}

	return user, nil
}

// emailAvailable fails with ErrDuplicateEmail when a user other than selfID
// already holds the email. Callers must hold the mutation lock.
func (s *UserService) emailAvailable(email, selfID string) error {
	existing, err := s.deps.Users.FindByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}
	return nil
}
