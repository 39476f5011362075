package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Locale management lives in the i18n plugin's admin API.

// ListLocales returns the configured locales.
func (c *Client) ListLocales(ctx context.Context) ([]Locale, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, "/i18n/locales", nil, nil)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing locales: %w", err)
	}
	var locales []Locale
	if err := json.Unmarshal(raw, &locales); err != nil {
		return nil, fmt.Errorf("decoding locales: %w", err)
	}
	return locales, nil
}

// CreateLocale adds a locale by ISO code.
func (c *Client) CreateLocale(ctx context.Context, code, name string, isDefault bool) (*Locale, error) {
	body := map[string]any{
		"code":      code,
		"name":      name,
		"isDefault": isDefault,
	}
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPost, "/i18n/locales", nil, body)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating locale %s: %w", code, err)
	}
	var locale Locale
	if err := json.Unmarshal(raw, &locale); err != nil {
		return nil, fmt.Errorf("decoding locale %s: %w", code, err)
	}
	return &locale, nil
}

// DeleteLocale removes a locale by numeric id.
func (c *Client) DeleteLocale(ctx context.Context, id int) error {
	_, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodDelete, "/i18n/locales/"+strconv.Itoa(id), nil, nil)
	}, nil)
	if err != nil {
		return fmt.Errorf("deleting locale %d: %w", id, err)
	}
	return nil
}
