// Package slack provides the Slack Web API client used to list channels and
// run per-channel actions, along with the Channel record type.
package slack
