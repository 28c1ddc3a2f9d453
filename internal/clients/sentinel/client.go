// Package sentinel provides a client for the Black Swan Sentinel API
package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/interfaces"
	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/session"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// Client implements the SentinelClient interface
type Client struct {
	baseURL    string
	session    *session.Session
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying transport client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the HTTP timeout. Zero leaves requests bounded only by ctx.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit caps requests per second. Zero or less disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a client bound to sess. A nil session gets a fresh
// in-memory one.
func NewClient(sess *session.Session, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(common.DefaultAPIURL, "/"),
		httpClient: &http.Client{},
		logger:     common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if sess == nil {
		sess = session.New(nil, c.logger)
	}
	c.session = sess

	return c
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session { return c.session }

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

type requestOptions struct {
	body    io.Reader
	headers http.Header
	noAuth  bool
}

// do executes one request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, method, endpoint string, opts requestOptions) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, opts.body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", common.UserAgent())
	req.Header.Set(RequestIDHeader, reqID)
	for k, vs := range opts.headers {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if !opts.noAuth {
		if tok := c.session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("method", method).Str("endpoint", endpoint).Str("request_id", reqID).
			Err(err).Msg("Sentinel API request failed")
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("method", method).Str("endpoint", endpoint).Str("request_id", reqID).
		Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("Sentinel API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
			Endpoint:   endpoint,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return body, nil
}

// jsonBody encodes v as a request body.
func jsonBody(endpoint string, v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request for %s: %w", endpoint, err)
	}
	return bytes.NewReader(data), nil
}

// decodeOne parses a single entity and validates it. An empty body decodes
// to the zero value, which must still validate.
func decodeOne[T models.Validator](endpoint string, body []byte) (T, error) {
	var out T
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return out, &DecodeError{Endpoint: endpoint, Err: err}
		}
	}
	if err := out.Validate(); err != nil {
		return out, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return out, nil
}

// decodeList parses a JSON array and validates every element.
func decodeList[T models.Validator](endpoint string, body []byte) ([]T, error) {
	var out []T
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Err: err}
		}
	}
	if err := models.ValidateAll(out); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return out, nil
}

func getOne[T models.Validator](ctx context.Context, c *Client, endpoint string) (*T, error) {
	body, err := c.do(ctx, http.MethodGet, endpoint, requestOptions{})
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[T](endpoint, body)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func getList[T models.Validator](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, endpoint, requestOptions{})
	if err != nil {
		return nil, err
	}
	return decodeList[T](endpoint, body)
}

// postOne sends payload as JSON (nil sends no body) and decodes one entity.
func postOne[T models.Validator](ctx context.Context, c *Client, endpoint string, payload any) (*T, error) {
	var opts requestOptions
	if payload != nil {
		body, err := jsonBody(endpoint, payload)
		if err != nil {
			return nil, err
		}
		opts.body = body
	}
	raw, err := c.do(ctx, http.MethodPost, endpoint, opts)
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[T](endpoint, raw)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Ensure Client implements SentinelClient
var _ interfaces.SentinelClient = (*Client)(nil)
