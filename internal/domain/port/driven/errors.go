package driven

import (
	"fmt"
	"time"
)

// AuthError reports a rejected or missing credential (401, or 403 without
// rate limit headers). Callers should prompt for configuration.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("github authentication failed (status %d): %v", e.StatusCode, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RateLimitError reports a primary or secondary rate limit response.
type RateLimitError struct {
	Reset time.Time // Zero when the provider did not say.
	Err   error
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return fmt.Sprintf("github rate limit exceeded: %v", e.Err)
	}
	return fmt.Sprintf("github rate limit exceeded until %s: %v", e.Reset.Format(time.RFC3339), e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// NetworkError reports a transport level failure; no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("github request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports any other non-2xx response.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("github returned status %d: %v", e.StatusCode, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// MalformedResponseError reports a payload that could not be decoded into
// the expected shape.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("unexpected github response payload: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
