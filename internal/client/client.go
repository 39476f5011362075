// Package client implements the Strapi API client: session management,
// admin login with single-flight and backoff, authenticated request dispatch
// with one-shot stale-token recovery, and the policy that picks between the
// privileged admin API and the public REST API per operation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxErrorBody caps how much of an upstream error response is carried in an
// APIError, keeping logs and tool output readable.
const maxErrorBody = 4 << 10

// Options configures a Client. BaseURL is required; at least one of
// APIToken or AdminEmail/AdminPassword must be set for the client to be
// useful, but that is enforced by config validation, not here.
type Options struct {
	BaseURL       string
	APIToken      string
	AdminEmail    string
	AdminPassword string

	RequestTimeout   time.Duration // per HTTP call, default 30s
	MaxLoginAttempts int           // 429 retry budget, default 3
	LoginBackoffBase time.Duration // first 429 backoff, doubles, default 1s
	MinLoginInterval time.Duration // spacing between exchanges, default 1s
	LoginWaitTimeout time.Duration // max wait for an in-flight login, default 30s
	ExpirySkew       time.Duration // treat tokens expiring this soon as gone, default 30s

	TokenCachePath string // optional on-disk token cache, "" disables

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to a Strapi instance over both its API surfaces.
type Client struct {
	baseURL       string
	apiToken      string
	adminEmail    string
	adminPassword string

	requestTimeout   time.Duration
	maxLoginAttempts int
	loginBackoffBase time.Duration
	minLoginInterval time.Duration
	loginWaitTimeout time.Duration
	expirySkew       time.Duration

	httpClient *http.Client
	log        *slog.Logger

	session *Session
	cache   *TokenCache

	// Seams for tests: sleeping and the clock.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	types *typeIndex
}

// New creates a Client from opts, filling in defaults for unset tunables.
func New(opts Options) *Client {
	c := &Client{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		apiToken:         opts.APIToken,
		adminEmail:       opts.AdminEmail,
		adminPassword:    opts.AdminPassword,
		requestTimeout:   opts.RequestTimeout,
		maxLoginAttempts: opts.MaxLoginAttempts,
		loginBackoffBase: opts.LoginBackoffBase,
		minLoginInterval: opts.MinLoginInterval,
		loginWaitTimeout: opts.LoginWaitTimeout,
		expirySkew:       opts.ExpirySkew,
		httpClient:       opts.HTTPClient,
		log:              opts.Logger,
		session:          NewSession(),
		sleep:            sleepCtx,
		now:              time.Now,
		types:            newTypeIndex(),
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = 30 * time.Second
	}
	if c.maxLoginAttempts <= 0 {
		c.maxLoginAttempts = 3
	}
	if c.loginBackoffBase <= 0 {
		c.loginBackoffBase = time.Second
	}
	if c.minLoginInterval <= 0 {
		c.minLoginInterval = time.Second
	}
	if c.loginWaitTimeout <= 0 {
		c.loginWaitTimeout = 30 * time.Second
	}
	if c.expirySkew <= 0 {
		c.expirySkew = 30 * time.Second
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if opts.TokenCachePath != "" {
		c.cache = NewTokenCache(opts.TokenCachePath, c.log)
		if token, ok := c.cache.Load(); ok && !c.tokenExpired(token) {
			c.session.SetToken(token, c.now())
			c.log.Debug("adopted cached admin token", "path", opts.TokenCachePath)
		}
	}
	return c
}

// BaseURL returns the configured CMS base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// HasAdminCredentials reports whether an admin identity is configured.
func (c *Client) HasAdminCredentials() bool {
	return c.adminEmail != "" && c.adminPassword != ""
}

// HasAPIToken reports whether a static API token is configured.
func (c *Client) HasAPIToken() bool { return c.apiToken != "" }

// Session exposes the session state, mainly for tests and the check command.
func (c *Client) Session() *Session { return c.session }

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// do issues one HTTP call against the CMS and returns the response body.
// Non-2xx responses become *APIError. The configured request timeout is
// layered onto the caller's context.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, authorization string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, authorization)
}

// send finishes and executes a prepared request. Used by do and by the
// multipart upload path, which builds its own body.
func (c *Client) send(req *http.Request, path, authorization string) (json.RawMessage, error) {
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	reqID := uuid.NewString()[:8]
	start := time.Now()
	c.log.Debug("cms request", "id", reqID, "method", req.Method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", req.Method, path, err)
	}

	c.log.Debug("cms response", "id", reqID, "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyText := string(data)
		if len(bodyText) > maxErrorBody {
			bodyText = bodyText[:maxErrorBody]
		}
		return nil, &APIError{
			Status:     resp.StatusCode,
			Method:     req.Method,
			Path:       path,
			Body:       strings.TrimSpace(bodyText),
			RetryAfter: resp.Header.Get("Retry-After"),
		}
	}
	return data, nil
}
