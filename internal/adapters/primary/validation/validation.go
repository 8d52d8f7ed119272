package validation

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
)

// Validator validates request data
type Validator struct {
	errors *apperrors.ValidationErrors
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{
		errors: apperrors.NewValidationErrors(),
	}
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return v.errors.HasErrors()
}

// Errors returns the validation errors
func (v *Validator) Errors() *apperrors.ValidationErrors {
	return v.errors
}

// Required validates that a string is not empty
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errors.Add(field, "This field is required")
	}
	return v
}

// MaxLength validates maximum string length
func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len(value) > max {
		v.errors.Add(field, "Must be at most "+strconv.Itoa(max)+" characters")
	}
	return v
}

// OneOf validates that a value is one of the allowed options
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, option := range allowed {
		if value == option {
			return v
		}
	}
	v.errors.Add(field, "Must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Date validates that a value is a calendar date in the given layout
func (v *Validator) Date(field, value, layout string) *Validator {
	if value == "" {
		return v
	}
	if _, err := time.Parse(layout, value); err != nil {
		v.errors.Add(field, "Must be a date in the form "+layout)
	}
	return v
}

// IntRange validates that a value parses as an integer within [min, max]
func (v *Validator) IntRange(field, value string, min, max int) *Validator {
	if value == "" {
		return v
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		v.errors.Add(field, "Must be an integer")
		return v
	}
	if n < min || n > max {
		v.errors.Add(field, "Must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
	}
	return v
}

// FileExtension validates that a filename carries one of the allowed extensions
func (v *Validator) FileExtension(field, filename string, allowed []string) *Validator {
	lower := strings.ToLower(filename)
	for _, ext := range allowed {
		if strings.HasSuffix(lower, ext) {
			return v
		}
	}
	v.errors.Add(field, "Must be a file of type: "+strings.Join(allowed, ", "))
	return v
}
