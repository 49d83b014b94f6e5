package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_WrapSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		kind   error
		status int
	}{
		{"invalid input", InvalidInput("bad", FieldError{Field: "title", Message: "title is required"}), ErrInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no"), ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("not yours"), ErrForbidden, http.StatusForbidden},
		{"not found", NotFound("book"), ErrNotFound, http.StatusNotFound},
		{"conflict", Conflict("dup"), ErrConflict, http.StatusConflict},
		{"internal", Internal(errors.New("db down")), ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.status, HTTPStatus(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", err.Message)
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "review not found", NotFound("review").Message)
}

func TestHTTPStatus_BareSentinels(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(fmt.Errorf("insert: %w", ErrConflict)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
