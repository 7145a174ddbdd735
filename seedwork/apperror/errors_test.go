package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"validation", Validation("bad_field", "field is required"), http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("no session"), http.StatusUnauthorized},
		{"forbidden", Forbidden("not yours"), http.StatusForbidden},
		{"quota default", Quota("extract_limit", "over cap"), http.StatusTooManyRequests},
		{"quota meeting_limit", Quota("meeting_limit", "too many meetings"), http.StatusForbidden},
		{"not found", NotFound("meeting not found"), http.StatusNotFound},
		{"conflict", Conflict("session_active", "already running", nil), http.StatusConflict},
		{"upstream", Upstream("provider failed", errors.New("boom")), http.StatusBadGateway},
		{"decode", Decode("bad json", errors.New("boom")), http.StatusInternalServerError},
		{"storage", Storage("db down", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPStatus())
		})
	}
}

func TestError_NotFoundNeverDistinguishesOwnership(t *testing.T) {
	// Invariant I-OwnerOnly: a record that exists but isn't owned by the
	// caller must produce the exact same message/code as a record that
	// doesn't exist at all.
	notOwned := NotFound("meeting not found")
	doesNotExist := NotFound("meeting not found")

	assert.Equal(t, notOwned.Code, doesNotExist.Code)
	assert.Equal(t, notOwned.Error(), doesNotExist.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("failed to save", cause)

	assert.True(t, errors.Is(err, cause))
	assert.ErrorContains(t, err, "connection refused")
}

func TestError_ErrorWithoutCause(t *testing.T) {
	err := Validation("missing_title", "title is required")
	assert.Equal(t, "title is required", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestAs(t *testing.T) {
	wrapped := Validation("bad_input", "nope")

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindValidation, appErr.Kind)

	_, ok = As(errors.New("plain error"))
	assert.False(t, ok)
}
