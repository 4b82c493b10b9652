package forms

import "net/url"

// ShareInput is a validated post recommendation request. It is used to
// compose one email and then discarded.
type ShareInput struct {
	Name     string `form:"name" validate:"required,max=25"`
	Email    string `form:"email" validate:"required,max=254,email"`
	To       string `form:"to" validate:"required,max=254,email"`
	Comments string `form:"comments" validate:"required,max=2000"`
}

// ParseShare reads the recommendation form fields from values and
// validates them.
func ParseShare(values url.Values) (ShareInput, Errors) {
	in := ShareInput{
		Name:     field(values, "name"),
		Email:    field(values, "email"),
		To:       field(values, "to"),
		Comments: field(values, "comments"),
	}
	return in, check(in)
}
