package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("nope"), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Run("validator errors become field errors", func(t *testing.T) {
		type payload struct {
			Title string `validate:"required"`
		}
		verr := validator.New().Struct(payload{})
		require.Error(t, verr)

		httpErr := ValidationError(fmt.Errorf("invalid post: %w", verr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "title", httpErr.Errors[0].Field)
		assert.Equal(t, "required", httpErr.Errors[0].Error)
	})

	t.Run("plain errors keep their message", func(t *testing.T) {
		httpErr := ValidationError(errors.New("post does not exist"))
		assert.Equal(t, "Validation failed: post does not exist", httpErr.Message)
		assert.Empty(t, httpErr.Errors)
	})
}
