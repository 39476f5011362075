package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// withAdminAuth wraps call with the admin session token, recovering exactly
// once from a stale token: on a 401 the token that was used is cleared, a
// re-login is performed, and the call is retried with the new token. Any
// further failure is surfaced as-is. This is the only retry the client ever
// does on its own.
func (c *Client) withAdminAuth(ctx context.Context, call func(ctx context.Context, token string) (json.RawMessage, error)) (json.RawMessage, error) {
	token := c.validToken()
	if token == "" {
		if err := c.Login(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthRequired, err)
		}
		token = c.session.Token()
		if token == "" {
			return nil, ErrAuthRequired
		}
	}

	raw, err := call(ctx, token)
	if !IsStatus(err, http.StatusUnauthorized) {
		return raw, err
	}

	// Stale token: the CMS rejected a token it previously accepted. Clear
	// exactly that token (a concurrent login may already have stored a
	// fresh one), re-authenticate, and retry the call once.
	c.log.Debug("admin token rejected, re-authenticating")
	c.session.ClearIf(token)
	if c.cache != nil {
		c.cache.Remove()
	}

	if err := c.Login(ctx); err != nil {
		return nil, fmt.Errorf("%w: re-login after 401: %w", ErrAuthRequired, err)
	}
	fresh := c.session.Token()
	if fresh == "" {
		return nil, ErrAuthRequired
	}
	return call(ctx, fresh)
}

// AdminRequest performs an authenticated JSON request against the admin API
// surface (content-manager, content-type-builder, i18n, upload). Body may be
// nil. The response body is returned raw; non-2xx responses are *APIError.
func (c *Client) AdminRequest(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	return c.withAdminAuth(ctx, func(ctx context.Context, token string) (json.RawMessage, error) {
		return c.do(ctx, method, path, params, body, "Bearer "+token)
	})
}

// PublicRequest performs a request against the public /api surface, using
// the static API token when one is configured. Unauthenticated calls are
// allowed: Strapi serves whatever the Public role permits.
func (c *Client) PublicRequest(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	authorization := ""
	if c.apiToken != "" {
		authorization = "Bearer " + c.apiToken
	}
	return c.do(ctx, method, path, params, body, authorization)
}

// Request routes a raw request to the given surface. Used by the strapi_rest
// escape-hatch tool.
func (c *Client) Request(ctx context.Context, surface, method, path string, params url.Values, body any) (json.RawMessage, error) {
	switch surface {
	case "admin":
		if !c.HasAdminCredentials() {
			return nil, ErrPrivilegedRequired
		}
		return c.AdminRequest(ctx, method, path, params, body)
	case "public", "":
		return c.PublicRequest(ctx, method, path, params, body)
	default:
		return nil, fmt.Errorf("unknown API surface %q", surface)
	}
}

// ClearToken drops the current session token and the on-disk cache entry.
// Mainly used by tests and the check command.
func (c *Client) ClearToken() {
	c.session.Clear()
	if c.cache != nil {
		c.cache.Remove()
	}
}
