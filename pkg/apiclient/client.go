// Package apiclient is the single gateway to the PolijeCare REST API. It
// injects the bearer token, encodes requests and decodes the response
// envelope or error body.
package apiclient

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
)

const maxBodyBytes = 10 << 20

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	userAgent  string
	log        *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  "polijecare-web",
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL is the API root every path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL.String() }

type requestConfig struct {
	query   url.Values
	headers http.Header
}

type RequestOption func(*requestConfig)

func WithQuery(q url.Values) RequestOption {
	return func(r *requestConfig) {
		for k, vs := range q {
			for _, v := range vs {
				if v != "" {
					r.query.Add(k, v)
				}
			}
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(r *requestConfig) { r.headers.Set(key, value) }
}

// WithIdempotencyKey lets the API recognize a repeated submission.
func WithIdempotencyKey(key string) RequestOption {
	return WithHeader("Idempotency-Key", key)
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do sends a JSON request and decodes a 2xx body into out (which may be
// nil). Non-2xx answers are returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reader, contentType, out, opts...)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any, opts ...RequestOption) error {
	rc := requestConfig{query: url.Values{}, headers: http.Header{}}
	for _, o := range opts {
		o(&rc)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, rc.query), body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vs := range rc.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if token, err := c.token(ctx); err != nil {
		return err
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.WarnContext(ctx, "api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("apiclient: read body: %w", err)
	}

	c.log.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, method, path, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if t, ok := tokenFromContext(ctx); ok {
		return t, nil
	}
	if c.tokens == nil {
		return "", nil
	}
	t, err := c.tokens.Token(ctx)
	if err != nil && !errors.Is(err, ErrNoToken) {
		return "", fmt.Errorf("apiclient: token: %w", err)
	}
	return t, nil
}

func (c *Client) resolve(path string, q url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
