package forms

import "net/url"

// CommentInput is a validated comment submission.
type CommentInput struct {
	Name  string `form:"name" validate:"required,max=80"`
	Email string `form:"email" validate:"required,max=254,email"`
	Body  string `form:"body" validate:"required,max=5000"`
}

// ParseComment reads the comment form fields from values and validates
// them. The returned input always carries the submitted (trimmed) values so
// an invalid form can be re-rendered as the reader left it.
func ParseComment(values url.Values) (CommentInput, Errors) {
	in := CommentInput{
		Name:  field(values, "name"),
		Email: field(values, "email"),
		Body:  field(values, "body"),
	}
	return in, check(in)
}
