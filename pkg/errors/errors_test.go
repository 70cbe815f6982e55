package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{ErrTaskNotFound, http.StatusNotFound},
		{ErrPromptNotFound, http.StatusNotFound},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrInvalidParam, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrTokenExpired, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrLLMCallFailed, http.StatusBadGateway},
		{New(CodeDatabaseError, "db"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.HTTPStatus != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.err.Code, tc.err.HTTPStatus, tc.want)
		}
	}
}

func TestWithErrorDoesNotMutateSentinel(t *testing.T) {
	cause := fmt.Errorf("boom")
	wrapped := ErrLLMCallFailed.WithError(cause)

	if ErrLLMCallFailed.Err != nil {
		t.Fatalf("sentinel mutated: %v", ErrLLMCallFailed.Err)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Fatalf("wrapped error lost its cause")
	}
	if !stderrors.Is(wrapped, ErrLLMCallFailed) {
		t.Fatalf("wrapped error should match sentinel by code")
	}
}

func TestAsAppErrorUnwrapsChain(t *testing.T) {
	err := fmt.Errorf("apply: %w", ErrTaskNotFound)

	appErr := AsAppError(err)
	if appErr.Code != CodeTaskNotFound {
		t.Fatalf("code = %s, want %s", appErr.Code, CodeTaskNotFound)
	}

	plain := AsAppError(fmt.Errorf("plain"))
	if plain.Code != CodeUnknown || plain.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected fallback: %+v", plain)
	}
}
