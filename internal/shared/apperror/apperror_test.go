package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	conflict := New(CodeConcurrencyConflict, "Balance changed concurrently", http.StatusConflict)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		detail any
	}{
		{name: "sentinel", err: ErrNotFound, status: http.StatusNotFound, code: CodeNotFound},
		{name: "wrapped sentinel", err: fmt.Errorf("submit: %w", conflict), status: http.StatusConflict, code: CodeConcurrencyConflict},
		{name: "client error keeps cause", err: ErrInvalidInput.WithCause(errors.New("bad date")), status: http.StatusBadRequest, code: CodeInvalidInput, detail: "bad date"},
		{name: "server error hides cause", err: ErrInternal.WithCause(errors.New("pq: connection refused")), status: http.StatusInternalServerError, code: CodeInternalError},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, code: CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToHTTP(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.detail, got.Details)
		})
	}
}

func TestAppError_Is(t *testing.T) {
	withCause := ErrNotFound.WithCause(errors.New("record not found"))

	assert.ErrorIs(t, withCause, ErrNotFound)
	assert.NotErrorIs(t, withCause, ErrForbidden)
	assert.Nil(t, Wrap(nil, CodeInternalError, "x", http.StatusInternalServerError))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(CodeConcurrencyConflict, "retry", http.StatusConflict)))
	assert.False(t, IsRetryable(ErrInvalidInput))
	assert.False(t, IsRetryable(errors.New("boom")))
}
