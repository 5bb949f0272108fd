package repositories

import "pressroom/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	List() ([]*models.User, error)
	Update(user *models.User) error
	Delete(id string) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List() ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
	DeleteByAuthor(author string) ([]*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByPost(postID string) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id string) error
	DeleteByPost(postID string) ([]*models.Comment, error)
	DeleteByAuthor(author string) ([]*models.Comment, error)
}
