// Package server provides the HTTP REST API for the candidate screener.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/candidate-screener/internal/db"
)

// ErrCandidateNotFound indicates the candidate record does not exist
type ErrCandidateNotFound struct {
	CandidateID string
}

func (e *ErrCandidateNotFound) Error() string {
	return fmt.Sprintf("candidate not found: %s", e.CandidateID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if errors.Is(err, db.ErrJobNotFound) {
		return http.StatusNotFound
	}

	switch err.(type) {
	case *ErrCandidateNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
