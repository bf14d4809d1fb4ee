package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- AppError ---

func TestAppError_ErrorString(t *testing.T) {
	withCause := &AppError{Code: "INTERNAL_ERROR", Message: "boom", Err: fmt.Errorf("disk full")}
	assert.Equal(t, "INTERNAL_ERROR: boom: disk full", withCause.Error())

	plain := &AppError{Code: "NOT_FOUND", Message: "category not found"}
	assert.Equal(t, "NOT_FOUND: category not found", plain.Error())
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized,
		ErrForbidden, ErrInternal, ErrConflict, ErrServiceUnavail, ErrStorageUnavailable,
	}
	for i := range sentinels {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j])
		}
	}
}

// --- Constructors ---

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("business", "b-1"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"not found by", NotFoundBy("user", "email", "a@b.co"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"already exists", AlreadyExists("category", "name", "Cafes"), "ALREADY_EXISTS", http.StatusConflict, ErrAlreadyExists},
		{"invalid input", InvalidInput("rating must be between 1 and 5"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"unauthorized", Unauthorized("invalid token"), "UNAUTHORIZED", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", Forbidden("not your review"), "FORBIDDEN", http.StatusForbidden, ErrForbidden},
		{"conflict", Conflict("stale write"), "CONFLICT", http.StatusConflict, ErrConflict},
		{"storage", StorageUnavailable(fmt.Errorf("read data/users.json")), "STORAGE_UNAVAILABLE", http.StatusInternalServerError, ErrStorageUnavailable},
		{"service", ServiceUnavailable("assistant unavailable", fmt.Errorf("timeout")), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrServiceUnavail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.True(t, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestNotFound_MessageNamesResource(t *testing.T) {
	err := NotFound("review", "r-42")
	assert.Contains(t, err.Message, "review")
	assert.Contains(t, err.Message, "r-42")
}

func TestStorageUnavailable_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := StorageUnavailable(cause)
	assert.True(t, errors.Is(err, cause))
	assert.NotContains(t, err.Message, "permission denied")
}

func TestInternal_HidesCause(t *testing.T) {
	err := Internal(fmt.Errorf("nil map write"))
	assert.Equal(t, "an internal error occurred", err.Message)
	assert.Contains(t, err.Error(), "nil map write")
}

// --- Wrap / HTTPStatus ---

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "get category")
	assert.Equal(t, "get category: resource not found", wrapped.Error())
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("user", "u-1")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("lookup: %w", ErrNotFound)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrAlreadyExists))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrInvalidInput))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrForbidden))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrServiceUnavail))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unexpected")))
}

func TestHTTPStatus_WrappedAppError(t *testing.T) {
	err := fmt.Errorf("create review: %w", InvalidInput("rating must be between 1 and 5"))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
