package render

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	apperrors "github.com/anime-shed/page-inspector-go/internal/errors"
)

// User-facing messages for classified render failures
const (
	MsgConnectionRefused = "Could not connect to the website. Please check if the URL is correct and the website is accessible."
	MsgNameNotResolved   = "Could not resolve the website domain. Please check if the URL is correct."
	MsgTimeout           = "The website took too long to respond. Please try again later."
	MsgRenderFailed      = "Failed to analyze the website. Please try again later."
)

// ClassifyNavigationError maps browser and network errors onto the
// connection, timeout and render error types.
func ClassifyNavigationError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	msg := err.Error()
	var dnsErr *net.DNSError

	switch {
	case strings.Contains(msg, "ERR_CONNECTION_REFUSED"),
		errors.Is(err, syscall.ECONNREFUSED),
		strings.Contains(msg, "connection refused"):
		return apperrors.NewConnectionError(MsgConnectionRefused, err)
	case strings.Contains(msg, "ERR_NAME_NOT_RESOLVED"),
		errors.As(err, &dnsErr) && !dnsErr.IsTimeout:
		return apperrors.NewConnectionError(MsgNameNotResolved, err)
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(strings.ToLower(msg), "timeout"),
		strings.Contains(msg, "ERR_TIMED_OUT"):
		return apperrors.NewTimeoutError(MsgTimeout, err)
	default:
		return apperrors.NewRenderError(MsgRenderFailed, err)
	}
}
