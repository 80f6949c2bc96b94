package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name       string
		err        *AppError
		wantType   ErrorType
		wantStatus int
	}{
		{"validation", NewValidationError("bad", cause), ErrorTypeValidation, http.StatusBadRequest},
		{"connection", NewConnectionError("refused", cause), ErrorTypeConnection, http.StatusBadGateway},
		{"timeout", NewTimeoutError("slow", cause), ErrorTypeTimeout, http.StatusGatewayTimeout},
		{"render", NewRenderError("eval", cause), ErrorTypeRender, http.StatusInternalServerError},
		{"not found", NewNotFoundError("missing", nil), ErrorTypeNotFound, http.StatusNotFound},
		{"rate limited", NewRateLimitError("slow down"), ErrorTypeRateLimited, http.StatusTooManyRequests},
		{"internal", NewInternalError("oops", cause), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("Expected type %s, got %s", tt.wantType, tt.err.Type)
			}
			if tt.err.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, tt.err.StatusCode)
			}
		})
	}
}

func TestWrappedErrorsAreDetected(t *testing.T) {
	base := NewTimeoutError("The website took too long to respond.", nil)
	wrapped := fmt.Errorf("session: %w", base)

	if !IsType(wrapped, ErrorTypeTimeout) {
		t.Error("Expected wrapped timeout error to be detected")
	}
	if GetStatusCode(wrapped) != http.StatusGatewayTimeout {
		t.Errorf("Expected 504, got %d", GetStatusCode(wrapped))
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := NewRenderError("Failed to analyze the website.", errors.New("secret stack detail"))
	if got := PublicMessage(err); got != "Failed to analyze the website." {
		t.Errorf("Unexpected public message: %q", got)
	}
	if got := PublicMessage(errors.New("raw")); got != GenericMessage {
		t.Errorf("Expected generic message for unknown errors, got %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := NewConnectionError("refused", cause)
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to reach the cause")
	}
}
