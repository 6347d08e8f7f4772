package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that carry their own HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - match with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// BulkMissError is returned when a bulk operation matched no tasks.
// It satisfies errors.Is(err, ErrNotFound).
type BulkMissError struct {
	Message string
}

func (e *BulkMissError) Error() string { return e.Message }

// StatusCode implements the HTTPError interface
func (e *BulkMissError) StatusCode() int { return http.StatusNotFound }

// Is allows errors.Is() to match against ErrNotFound
func (e *BulkMissError) Is(target error) bool {
	return target == ErrNotFound
}
