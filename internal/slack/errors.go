package slack

import (
	"errors"
	"fmt"
)

// Common errors returned by the Web API client.
var (
	// ErrRequestFailed indicates the API answered with "ok": false.
	ErrRequestFailed = errors.New("slack request failed")

	// ErrRateLimited indicates an HTTP 429 from the API.
	ErrRateLimited = errors.New("slack rate limit exceeded")

	// ErrInvalidResponse indicates a payload that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from slack")
)

// APIError describes a Web API call that did not succeed.
type APIError struct {
	Method     string // Web API method, e.g. channels.list
	StatusCode int    // HTTP status, 200 for "ok": false answers
	Code       string // Slack error code, e.g. invalid_auth
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("`%s` request failed (status %d)", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("`%s` request failed: %s", e.Method, e.Code)
}

// Unwrap lets errors.Is match ErrRequestFailed or ErrRateLimited.
func (e *APIError) Unwrap() error {
	if e.StatusCode == 429 {
		return ErrRateLimited
	}
	return ErrRequestFailed
}

// IsRequestFailure reports whether err is a RequestFailure from the API.
func IsRequestFailure(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}
