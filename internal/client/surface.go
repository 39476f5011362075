package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// A surfaceCall attempts one logical operation against one API surface.
type surfaceCall func(ctx context.Context) (json.RawMessage, error)

// strategy names a surface and the call that exercises it. The fallback
// order is a plain ordered slice, not nested error handling: the selector
// walks the list and the first surface to answer wins.
type strategy struct {
	surface string
	call    surfaceCall
}

// runStrategies executes strategies in order and returns the first
// successful response. A logical operation is satisfied by exactly one
// surface; failures from earlier surfaces are only reported if every
// surface fails.
func (c *Client) runStrategies(ctx context.Context, strategies []strategy) (json.RawMessage, error) {
	var failures []error
	for _, s := range strategies {
		raw, err := s.call(ctx)
		if err == nil {
			return raw, nil
		}
		c.log.Debug("surface attempt failed", "surface", s.surface, "error", err)
		failures = append(failures, fmt.Errorf("%s surface: %w", s.surface, err))
	}
	return nil, errors.Join(failures...)
}

// selectStrategies assembles the ordered surface list for an operation:
// admin first when an admin identity is configured, the public surface as
// fallback when a static token exists. Privileged operations (public == nil)
// fail fast with ErrPrivilegedRequired when no admin identity is configured,
// without any network traffic.
func (c *Client) selectStrategies(admin, public surfaceCall) ([]strategy, error) {
	if public == nil {
		if !c.HasAdminCredentials() {
			return nil, ErrPrivilegedRequired
		}
		return []strategy{{surface: "admin", call: admin}}, nil
	}

	var out []strategy
	if c.HasAdminCredentials() && admin != nil {
		out = append(out, strategy{surface: "admin", call: admin})
	}
	if c.HasAPIToken() || len(out) == 0 {
		out = append(out, strategy{surface: "public", call: public})
	}
	return out, nil
}

// dispatch is the common path for the typed endpoint wrappers: build the
// strategy list and run it.
func (c *Client) dispatch(ctx context.Context, admin, public surfaceCall) (json.RawMessage, error) {
	strategies, err := c.selectStrategies(admin, public)
	if err != nil {
		return nil, err
	}
	return c.runStrategies(ctx, strategies)
}
