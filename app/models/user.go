package models

// CreateUserInput carries the fields for a new user.
type CreateUserInput struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
}

// Validate checks the input against its field constraints.
func (in *CreateUserInput) Validate() error {
	return validate.Struct(in)
}

// UpdateUserInput overwrites a user's name and email; Age is applied only
// when supplied. A nil pointer means "leave unchanged", which is distinct
// from an explicit zero.
type UpdateUserInput struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
}

// Validate checks the input against its field constraints.
func (in *UpdateUserInput) Validate() error {
	return validate.Struct(in)
}
