package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,contact_email"`
	Message string `json:"message" validate:"required,min=10"`
}

func TestIsContactEmail(t *testing.T) {
	for _, s := range []string{"a@b.co", "jo@x.co", "first.last+tag@sub.example.org"} {
		assert.True(t, IsContactEmail(s), s)
	}
	for _, s := range []string{"foo", "foo@bar", "@bar.com", "foo@.", "a b@c.co", "a@b c.co", "a@@b.co", "a@b.co ",
		"a\u00a0b@c.co", "a@b\u2003c.co", "a@b.c\u2028o", "\ufeffa@b.co", "a@b\u3000.co", "a\vb@c.co"} {
		assert.False(t, IsContactEmail(s), s)
	}
}

func TestFieldErrors(t *testing.T) {
	v := New()

	err := v.Struct(contactForm{Name: "J", Email: "foo@bar", Message: ""})
	errs := FieldErrors(err)

	assert.Equal(t, map[string]string{
		"name":    "Name must be at least 2 characters long",
		"email":   "Please enter a valid email address",
		"message": "Message is required",
	}, errs)
}

func TestFieldErrorsValid(t *testing.T) {
	err := New().Struct(contactForm{Name: "Jo", Email: "a@b.co", Message: "Hello there friend"})
	assert.NoError(t, err)
	assert.Empty(t, FieldErrors(err))
}

func TestFieldErrorsNonValidationError(t *testing.T) {
	errs := FieldErrors(errors.New("boom"))
	assert.Equal(t, "boom", errs["_"])
}
