package models

// CreateCommentInput carries the fields for a new comment. Author must name
// an existing user and Post a post that is currently published.
type CreateCommentInput struct {
	Text   string `json:"text" validate:"required,min=1,max=1000"`
	Author string `json:"author" validate:"required"`
	Post   string `json:"post" validate:"required"`
}

// Validate checks the input against its field constraints.
func (in *CreateCommentInput) Validate() error {
	return validate.Struct(in)
}

// UpdateCommentInput overwrites the comment text when supplied.
type UpdateCommentInput struct {
	Text *string `json:"text,omitempty" validate:"omitempty,min=1,max=1000"`
}

// Validate checks the input against its field constraints.
func (in *UpdateCommentInput) Validate() error {
	return validate.Struct(in)
}
