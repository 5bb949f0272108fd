package models

// CreatePostInput carries the fields for a new post. Author must name an
// existing user.
type CreatePostInput struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	Author    string `json:"author" validate:"required"`
}

// Validate checks the input against its field constraints.
func (in *CreatePostInput) Validate() error {
	return validate.Struct(in)
}

// UpdatePostInput applies per-field overwrites. Each field is optional and
// independent; nil means "leave unchanged". Published flips are how a post
// enters or leaves subscriber visibility.
type UpdatePostInput struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Validate checks the input against its field constraints.
func (in *UpdatePostInput) Validate() error {
	return validate.Struct(in)
}
