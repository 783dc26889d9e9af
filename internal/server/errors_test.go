package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "limit", Message: "must be positive"}
	assert.Equal(t, "validation error: limit - must be positive", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrUnavailable(t *testing.T) {
	err := &ErrUnavailable{Service: "history"}
	assert.Equal(t, "history is not configured", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	fieldErr := (&types.AnalyzeRequest{}).Validate()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "body"}, http.StatusBadRequest},
		{"request fields", fieldErr, http.StatusBadRequest},
		{"not found", db.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", db.ErrNotFound), http.StatusNotFound},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	fieldErr := (&types.AnalyzeRequest{JobDescription: "too short"}).Validate()
	msg := errorMessage(fieldErr)
	assert.Contains(t, msg, `resumetext failed "required"`)
	assert.Contains(t, msg, `jobdescription failed "min"`)

	assert.Equal(t, "internal server error", errorMessage(errors.New("pq: password authentication failed")))
	assert.Equal(t, "analysis not found", errorMessage(db.ErrNotFound))
}
