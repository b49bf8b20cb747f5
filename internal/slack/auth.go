package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goslack "github.com/slack-go/slack"
)

// MethodAuthTest is the Web API method that checks the token.
const MethodAuthTest = "auth.test"

// AuthTest reports the identity behind the client's token.
//
// When fail is false a rejected token is not an error: the returned AuthInfo
// has OK unset and Error holding the Slack error code. Transport faults are
// returned as errors in both modes.
func (c *Client) AuthTest(ctx context.Context, fail bool) (*AuthInfo, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	api := goslack.New(c.token,
		goslack.OptionAPIURL(c.baseURL+"/"),
		goslack.OptionHTTPClient(c.httpClient),
	)

	c.logger.Debug("calling slack api", "method", MethodAuthTest)
	resp, err := api.AuthTestContext(ctx)
	if err != nil {
		var slackErr goslack.SlackErrorResponse
		if !errors.As(err, &slackErr) {
			return nil, fmt.Errorf("calling %s: %w", MethodAuthTest, err)
		}
		if fail {
			return nil, &APIError{Method: MethodAuthTest, StatusCode: http.StatusOK, Code: slackErr.Err}
		}
		return &AuthInfo{OK: false, Error: slackErr.Err}, nil
	}

	return &AuthInfo{
		OK:     true,
		URL:    resp.URL,
		Team:   resp.Team,
		TeamID: resp.TeamID,
		User:   resp.User,
		UserID: resp.UserID,
	}, nil
}
