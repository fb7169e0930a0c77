package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	err := NotFound("cart", "session-1")

	assert.Equal(t, "NOT_FOUND: cart with id session-1 not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppError_WrappedThroughFmt(t *testing.T) {
	inner := InvalidInput("quantity must be positive")
	outer := fmt.Errorf("add item: %w", inner)

	var appErr *AppError
	assert.True(t, errors.As(outer, &appErr))
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(outer))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found sentinel", fmt.Errorf("x: %w", ErrNotFound), http.StatusNotFound},
		{"invalid input sentinel", fmt.Errorf("x: %w", ErrInvalidInput), http.StatusBadRequest},
		{"unavailable", Unavailable("catalog down"), http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
