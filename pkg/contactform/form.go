// Package contactform is the client side of the contact pipeline: it holds the
// form a visitor fills in, validates it, submits it to the relay server and
// tracks the outcome as an Idle/Submitting/Success/Error state machine.
package contactform

import (
	"strings"

	"portfolio-backend/pkg/validation"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Form is one submission as typed by the visitor
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Get returns the value of a field
func (f Form) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	}
	return ""
}

// FieldErrors maps a field to its error message; a missing key means the field is valid
type FieldErrors map[Field]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// rules is the view of a Form the validator checks: name and message are
// trimmed, email is checked as typed unless it is blank.
type rules struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,contact_email"`
	Message string `json:"message" validate:"required,min=10"`
}

var validate = validation.New()

// Validate checks every field independently and returns all failures at once.
// It has no side effects.
func Validate(f Form) FieldErrors {
	r := rules{
		Name:    strings.TrimSpace(f.Name),
		Email:   f.Email,
		Message: strings.TrimSpace(f.Message),
	}
	if strings.TrimSpace(r.Email) == "" {
		r.Email = ""
	}

	errs := FieldErrors{}
	for field, msg := range validation.FieldErrors(validate.Struct(r)) {
		errs[Field(field)] = msg
	}
	return errs
}
