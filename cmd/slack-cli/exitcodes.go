package main

import (
	"errors"

	"github.com/chrisedwards/slack-cli/internal/action"
	"github.com/chrisedwards/slack-cli/internal/slack"
)

// Exit codes
const (
	ExitSuccess        = 0 // Success
	ExitError          = 1 // General error, or confirmation declined
	ExitUsage          = 2 // Conflicting or invalid flags
	ExitRequestFailed  = 3 // The channel listing (or another API call) failed
	ExitPartialFailure = 4 // Some channel actions failed (--fail-on-error only)
)

var (
	errInvalidFlag    = errors.New("invalid flag")
	errPartialFailure = errors.New("some channel actions failed")
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, action.ErrUsage), errors.Is(err, errInvalidFlag):
		return ExitUsage
	case errors.Is(err, errPartialFailure):
		return ExitPartialFailure
	case slack.IsRequestFailure(err), errors.Is(err, slack.ErrRateLimited):
		return ExitRequestFailed
	default:
		return ExitError
	}
}
