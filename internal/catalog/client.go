package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CollectionFetcher fetches one collection from a resolved endpoint path.
// It is implemented by *Client and can be faked in tests.
type CollectionFetcher interface {
	FetchCollection(ctx context.Context, endpoint string) ([]json.RawMessage, error)
}

// Ensure Client implements CollectionFetcher at compile time.
var _ CollectionFetcher = (*Client)(nil)

// Client talks to the catalogue REST API.
type Client struct {
	baseURL   *url.URL
	basePath  string
	http      *http.Client
	userAgent string
	logger    *slog.Logger

	timeout    time.Duration
	hasTimeout bool
}

const (
	defaultAPIBase   = "http://127.0.0.1:8000"
	defaultUserAgent = "thwip/0.1"
	requestIDHeader  = "X-Request-ID"
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero leaves requests unbounded. It
// applies to a copy of the transport client, in any option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// WithLogger routes request logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the API rooted at apiBase.
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		basePath:  strings.TrimSuffix(base.EscapedPath(), "/"),
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the API root the client resolves endpoints against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchCollection performs a single GET of endpoint and returns the raw
// collection elements in server order. A paginated envelope yields its
// "results" array. Every failure is a *FetchError.
func (c *Client) FetchCollection(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	if c == nil {
		return nil, &FetchError{Kind: NetworkError, Endpoint: endpoint, Err: errors.New("client is nil")}
	}
	rel, err := url.Parse(c.basePath + endpoint)
	if err != nil {
		return nil, &FetchError{Kind: NetworkError, Endpoint: endpoint, Err: fmt.Errorf("parse endpoint: %w", err)}
	}
	reqURL := c.baseURL.ResolveReference(rel)
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &FetchError{Kind: NetworkError, Endpoint: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("collection request failed", "endpoint", endpoint, "request_id", requestID, "error", err)
		return nil, &FetchError{Kind: NetworkError, Endpoint: endpoint, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("collection response",
		"endpoint", endpoint,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Kind: HTTPError, Status: resp.StatusCode, Endpoint: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: NetworkError, Endpoint: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	items, err := parseCollection(body)
	if err != nil {
		return nil, &FetchError{Kind: ParseError, Endpoint: endpoint, Err: err}
	}
	return items, nil
}

// pageEnvelope is the paginated list shape of the backend.
type pageEnvelope struct {
	Results *[]json.RawMessage `json:"results"`
}

func parseCollection(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}
	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return nonNil(items), nil
	case '{':
		var page pageEnvelope
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, err
		}
		if page.Results == nil {
			return nil, errors.New("object without results array")
		}
		return nonNil(*page.Results), nil
	default:
		return nil, fmt.Errorf("expected array, got %q", truncateBody(trimmed))
	}
}

// Decode converts raw collection elements into typed records, preserving
// order. Any element that does not match R is a ParseError.
func Decode[R any](endpoint string, raw []json.RawMessage) ([]R, error) {
	out := make([]R, 0, len(raw))
	for i, item := range raw {
		var rec R
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, &FetchError{Kind: ParseError, Endpoint: endpoint, Err: fmt.Errorf("element %d: %w", i, err)}
		}
		out = append(out, rec)
	}
	return out, nil
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}

func truncateBody(b []byte) string {
	const limit = 32
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	// A path prefix is kept so the API can live below the site root.
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
