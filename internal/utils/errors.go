package utils

import (
	"errors"
	"sort"
	"strings"
)

// Common application errors used across services.
var (
	ErrProductNotFound  = errors.New("PRODUCT_NOT_FOUND")
	ErrCategoryNotFound = errors.New("CATEGORY_NOT_FOUND")
	ErrOrderNotFound    = errors.New("ORDER_NOT_FOUND")
	ErrForbidden        = errors.New("FORBIDDEN")
	ErrSlugConflict     = errors.New("SLUG_CONFLICT")
	ErrInvalidOrdering  = errors.New("INVALID_ORDERING")
	ErrPageOutOfRange   = errors.New("PAGE_OUT_OF_RANGE")
	ErrStorageDisabled  = errors.New("STORAGE_DISABLED")
)

// FieldErrors maps a request field (e.g. "items[0].quantity") to its problems.
type FieldErrors map[string][]string

// Add records a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether any field satisfying match has errors.
func (f FieldErrors) Has(match func(field string) bool) bool {
	for field := range f {
		if match(field) {
			return true
		}
	}
	return false
}

// Merge adds the messages of fields in other that f has no messages for.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		if _, ok := f[field]; !ok {
			f[field] = append([]string(nil), messages...)
		}
	}
}

// ValidationError is returned when request data fails validation.
type ValidationError struct {
	Message string
	Details FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return e.Message + ": " + strings.Join(fields, ", ")
}

// NewValidationError builds a ValidationError with a single field message.
func NewValidationError(message, field, detail string) *ValidationError {
	details := FieldErrors{}
	details.Add(field, detail)
	return &ValidationError{Message: message, Details: details}
}
