package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Schema introspection and mutation go through the content-type-builder
// plugin, which only exists on the admin surface. With token-only
// configuration these operations fail fast with ErrPrivilegedRequired.

// ListContentTypes returns every content type the builder knows about.
// When userOnly is true, plugin-internal types are filtered out and only
// api:: types remain. Results refresh the plural-name cache used by the
// public-surface fallback.
func (c *Client) ListContentTypes(ctx context.Context, userOnly bool) ([]ContentType, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, "/content-type-builder/content-types", nil, nil)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing content types: %w", err)
	}

	var parsed struct {
		Data []ContentType `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding content types: %w", err)
	}

	c.types.store(parsed.Data)

	if !userOnly {
		return parsed.Data, nil
	}
	var out []ContentType
	for _, ct := range parsed.Data {
		if ct.Plugin == "" {
			out = append(out, ct)
		}
	}
	return out, nil
}

// GetContentType returns the schema for one content type UID.
func (c *Client) GetContentType(ctx context.Context, uid string) (*ContentType, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, "/content-type-builder/content-types/"+url.PathEscape(uid), nil, nil)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching content type %s: %w", uid, err)
	}

	var parsed struct {
		Data ContentType `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding content type %s: %w", uid, err)
	}
	c.types.store([]ContentType{parsed.Data})
	return &parsed.Data, nil
}

// CreateContentType creates a new collection or single type. The CMS
// restarts to apply schema changes, so the first call after this one may
// transiently fail.
func (c *Client) CreateContentType(ctx context.Context, schema ContentTypeSchema) (json.RawMessage, error) {
	body := map[string]any{
		"contentType": schema,
	}
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPost, "/content-type-builder/content-types", nil, body)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating content type %q: %w", schema.DisplayName, err)
	}
	return raw, nil
}

// UpdateContentType replaces the schema of an existing content type.
func (c *Client) UpdateContentType(ctx context.Context, uid string, schema ContentTypeSchema) (json.RawMessage, error) {
	body := map[string]any{
		"contentType": schema,
	}
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPut, "/content-type-builder/content-types/"+url.PathEscape(uid), nil, body)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("updating content type %s: %w", uid, err)
	}
	return raw, nil
}

// DeleteContentType removes a content type and its entries.
func (c *Client) DeleteContentType(ctx context.Context, uid string) error {
	_, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodDelete, "/content-type-builder/content-types/"+url.PathEscape(uid), nil, nil)
	}, nil)
	if err != nil {
		return fmt.Errorf("deleting content type %s: %w", uid, err)
	}
	return nil
}

// ListComponents returns every component schema.
func (c *Client) ListComponents(ctx context.Context) ([]Component, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, "/content-type-builder/components", nil, nil)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}

	var parsed struct {
		Data []Component `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding components: %w", err)
	}
	return parsed.Data, nil
}

// GetComponent returns the schema for one component UID.
func (c *Client) GetComponent(ctx context.Context, uid string) (*Component, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, "/content-type-builder/components/"+url.PathEscape(uid), nil, nil)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching component %s: %w", uid, err)
	}

	var parsed struct {
		Data Component `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding component %s: %w", uid, err)
	}
	return &parsed.Data, nil
}

// CreateComponent creates a new component in the given category.
func (c *Client) CreateComponent(ctx context.Context, category string, schema ContentTypeSchema) (json.RawMessage, error) {
	body := map[string]any{
		"component": map[string]any{
			"category":    category,
			"displayName": schema.DisplayName,
			"icon":        "cube",
			"attributes":  schema.Attributes,
		},
	}
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPost, "/content-type-builder/components", nil, body)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating component %q: %w", schema.DisplayName, err)
	}
	return raw, nil
}

// UpdateComponent replaces an existing component's attributes.
func (c *Client) UpdateComponent(ctx context.Context, uid string, attributes map[string]any) (json.RawMessage, error) {
	body := map[string]any{
		"component": map[string]any{
			"attributes": attributes,
		},
	}
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPut, "/content-type-builder/components/"+url.PathEscape(uid), nil, body)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("updating component %s: %w", uid, err)
	}
	return raw, nil
}
