package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for Slack's Web API.
	DefaultBaseURL = "https://slack.com/api"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// RateLimit is the client-side ceiling in requests per second.
	RateLimit = 1.0

	// RateBurst allows a short burst (auth test + listing) without waiting.
	RateBurst = 3
)

// Web API methods used by this client.
const (
	MethodChannelsList    = "channels.list"
	MethodChannelsArchive = "channels.archive"
	MethodChannelsDelete  = "channels.delete"
)

// Client is a rate-limited client for the token-authenticated Slack Web API.
type Client struct {
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a new Web API client authenticated with the given token.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), RateBurst),
		logger:     slog.New(slog.DiscardHandler),
		baseURL:    DefaultBaseURL,
	}
}

func (c *Client) clone() *Client {
	cp := *c
	return &cp
}

// WithBaseURL returns a new Client with the specified base URL.
// Useful for testing with mock servers.
func (c *Client) WithBaseURL(baseURL string) *Client {
	cp := c.clone()
	cp.baseURL = strings.TrimRight(baseURL, "/")
	return cp
}

// WithHTTPClient returns a new Client with the specified HTTP client.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	cp := c.clone()
	cp.httpClient = client
	return cp
}

// WithLimiter returns a new Client using the given limiter. A nil limiter
// disables client-side pacing.
func (c *Client) WithLimiter(l *rate.Limiter) *Client {
	cp := c.clone()
	cp.limiter = l
	return cp
}

// WithLogger returns a new Client that logs requests to logger.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	cp := c.clone()
	cp.logger = logger
	return cp
}

// Token returns the bearer token the client authenticates with.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the Web API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiResponse is the envelope shared by every Web API answer.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type listResponse struct {
	apiResponse
	Channels []RawChannel `json:"channels"`
}

// ListChannels calls channels.list once with params and returns the raw
// channel objects. An "ok": false answer is a RequestFailure.
func (c *Client) ListChannels(ctx context.Context, params map[string]string) ([]RawChannel, error) {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	var resp listResponse
	if err := c.call(ctx, MethodChannelsList, form, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, &APIError{Method: MethodChannelsList, StatusCode: http.StatusOK, Code: resp.Error}
	}
	return resp.Channels, nil
}

// PerformAction invokes a per-channel method such as channels.archive.
// A not-ok answer, an HTTP error status (429, 5xx) or an undecodable body is
// reported through the result, not as an error. The error return is reserved
// for transport faults: the request could not be sent or ctx ended.
func (c *Client) PerformAction(ctx context.Context, method, channelID string) (ActionResult, error) {
	form := url.Values{}
	form.Set("channel", channelID)

	var resp apiResponse
	err := c.call(ctx, method, form, &resp)

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		code := apiErr.Code
		if code == "" {
			code = fmt.Sprintf("http_%d", apiErr.StatusCode)
		}
		c.logger.Debug("slack action answered with http error", "method", method, "channel", channelID, "status", apiErr.StatusCode, "error", code)
		return ActionResult{OK: false, Error: code}, nil
	case errors.Is(err, ErrInvalidResponse):
		return ActionResult{OK: false, Error: "invalid_response"}, nil
	case err != nil:
		return ActionResult{}, err
	}
	return ActionResult{OK: resp.OK, Error: resp.Error}, nil
}

func (c *Client) call(ctx context.Context, method string, form url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := c.baseURL + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("calling slack api", "method", method, "params", form.Encode())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// Slack usually still sends {"ok":false,"error":...}, e.g. ratelimited on 429.
		var body apiResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		c.logger.Debug("slack api http error", "method", method, "status", resp.StatusCode, "error", body.Error)
		return &APIError{Method: method, StatusCode: resp.StatusCode, Code: body.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrInvalidResponse, method, err)
	}
	c.logger.Debug("slack api call completed", "method", method)
	return nil
}

