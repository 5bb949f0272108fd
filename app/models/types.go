package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// User is a registered author. Email is unique across all users.
type User struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
}

// Post is an article authored by a user. Only published posts are visible
// to subscribers.
type Post struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	Author    string `json:"author" validate:"required"`
}

// Comment belongs to a post that was published when the comment was made.
type Comment struct {
	ID     string `json:"id" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Author string `json:"author" validate:"required"`
	Post   string `json:"post" validate:"required"`
}
