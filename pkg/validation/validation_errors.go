package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-facing labels
var FieldLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"message": "Message",
}

// FieldErrors converts validator.ValidationErrors to a field -> message map.
// Only the first failing rule per field is kept.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		out["_"] = err.Error()
		return out
	}

	for _, e := range validationErrors {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = formatSingleError(e)
	}
	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, e.Param())
	case "email", "contact_email":
		return "Please enter a valid email address"
	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
