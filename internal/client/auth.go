package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// loginResponse is the shape of a successful POST /admin/login.
type loginResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// rateLimitedError carries the server's Retry-After hint from a 429 login
// response through the backoff loop.
type rateLimitedError struct {
	retryAfter time.Duration
}

func (e *rateLimitedError) Error() string { return "login endpoint returned 429" }

// Login ensures the client holds a valid admin session token, performing
// the credential exchange if needed. It is safe for concurrent use: exactly
// one caller performs the network exchange, every other concurrent caller
// waits for that exchange and observes its outcome.
//
// Calling Login while already authenticated is a no-op.
func (c *Client) Login(ctx context.Context) error {
	if !c.HasAdminCredentials() {
		return ErrAdminCredentialsMissing
	}

	if c.validToken() != "" {
		return nil
	}

	leader, wait := c.session.BeginLogin()
	if !leader {
		return c.awaitLogin(ctx, wait)
	}
	return c.leadLogin(ctx)
}

// awaitLogin blocks until the in-flight exchange finishes, then reports
// based on whether a token now exists. The wait is bounded by the login
// wait timeout and the caller's context.
func (c *Client) awaitLogin(ctx context.Context, wait <-chan struct{}) error {
	t := time.NewTimer(c.loginWaitTimeout)
	defer t.Stop()
	select {
	case <-wait:
	case <-t.C:
		return fmt.Errorf("%w: timed out waiting for in-flight login", ErrLoginFailed)
	case <-ctx.Done():
		return ctx.Err()
	}
	if c.validToken() == "" {
		return fmt.Errorf("%w: concurrent login attempt did not produce a token", ErrLoginFailed)
	}
	return nil
}

// leadLogin performs the actual credential exchange. The in-flight guard is
// released on every exit path.
func (c *Client) leadLogin(ctx context.Context) (err error) {
	defer c.session.EndLogin()

	// Another caller may have stored a token between our validToken check
	// and winning the guard.
	if c.validToken() != "" {
		return nil
	}

	// Space exchanges out by the minimum inter-attempt interval.
	if last := c.session.LastAttempt(); !last.IsZero() {
		if remaining := c.minLoginInterval - c.now().Sub(last); remaining > 0 {
			if err := c.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}

	delay := c.loginBackoffBase
	for attempt := 1; attempt <= c.maxLoginAttempts; attempt++ {
		c.session.RecordAttempt(c.now())

		token, err := c.exchange(ctx)
		if err == nil {
			c.session.SetToken(token, c.now())
			if c.cache != nil {
				c.cache.Save(token)
			}
			c.log.Debug("admin login succeeded", "attempt", attempt)
			return nil
		}

		var rl *rateLimitedError
		if !errors.As(err, &rl) {
			// Bad credentials, network failure: not transient, surface it.
			return err
		}
		if attempt == c.maxLoginAttempts {
			return fmt.Errorf("%w: gave up after %d attempts", ErrLoginRateLimited, attempt)
		}

		wait := delay
		if rl.retryAfter > 0 {
			wait = rl.retryAfter
		}
		c.log.Debug("login rate limited, backing off", "attempt", attempt, "wait", wait)
		if err := c.sleep(ctx, wait); err != nil {
			return err
		}
		delay *= 2
	}
	return fmt.Errorf("%w: exhausted attempts", ErrLoginRateLimited)
}

// exchange performs one POST /admin/login round trip.
func (c *Client) exchange(ctx context.Context) (string, error) {
	payload := map[string]string{
		"email":    c.adminEmail,
		"password": c.adminPassword,
	}
	raw, err := c.do(ctx, http.MethodPost, "/admin/login", nil, payload, "")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.Status == http.StatusTooManyRequests {
				return "", &rateLimitedError{retryAfter: parseRetryAfter(apiErr)}
			}
			return "", fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}
		return "", fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	var parsed loginResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding login response: %v", ErrLoginFailed, err)
	}
	if parsed.Data.Token == "" {
		return "", fmt.Errorf("%w: login response contained no token", ErrLoginFailed)
	}
	return parsed.Data.Token, nil
}

// parseRetryAfter extracts the server's Retry-After hint in whole seconds.
// Absent or malformed hints yield 0 and the caller falls back to
// exponential backoff.
func parseRetryAfter(apiErr *APIError) time.Duration {
	if apiErr.RetryAfter == "" {
		return 0
	}
	secs, err := strconv.Atoi(apiErr.RetryAfter)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// validToken returns the session token unless it is absent or about to
// expire. Strapi admin tokens are JWTs; the exp claim is peeked at without
// signature verification (the server holds the secret) so a token that is
// guaranteed to 401 gets replaced proactively. Opaque tokens pass through.
func (c *Client) validToken() string {
	token := c.session.Token()
	if token == "" {
		return ""
	}
	if c.tokenExpired(token) {
		c.session.ClearIf(token)
		return ""
	}
	return token
}

// tokenExpired reports whether token is a JWT whose exp claim falls within
// the configured skew of now. Non-JWT tokens and JWTs without exp are
// treated as unexpired.
func (c *Client) tokenExpired(token string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !c.now().Add(c.expirySkew).Before(claims.ExpiresAt.Time)
}
