package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Failure categories for generation calls. Providers wrap their raw errors
// with one of these so the HTTP boundary can tell the user something specific
// instead of a generic failure string.
var (
	ErrUnavailable   = errors.New("llm: service unavailable")
	ErrModelNotFound = errors.New("llm: model not found")
	ErrRateLimited   = errors.New("llm: rate limited")
	ErrTimeout       = errors.New("llm: request timed out")
)

// CategorizeHTTPStatus maps a provider HTTP status to a sentinel category.
// Unknown statuses return nil (caller keeps its own error).
func CategorizeHTTPStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrModelNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return ErrUnavailable
	case http.StatusGatewayTimeout:
		return ErrTimeout
	}
	return nil
}

// CategorizeTransportError maps transport-level failures (connection refused,
// deadline exceeded) to a sentinel category.
func CategorizeTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrUnavailable
}
