package custom_errors

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthenticated  = errors.New("unauthenticated")

	ErrSlugConflict   = errors.New("slug already taken")
	ErrSlugGeneration = errors.New("failed to generate unique slug")

	ErrDatabaseQuery = errors.New("database query failed")
	ErrTagSyncFailed = errors.New("failed to synchronize post tags")

	ErrImageStore  = errors.New("failed to store image")
	ErrImageDelete = errors.New("failed to delete image")

	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError maps a field name to the first message describing why the
// submitted value was rejected.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field unless the field already has a message.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
