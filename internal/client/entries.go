package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// contentManagerPath builds the content-manager path for a content type,
// picking collection-types or single-types from the cached schema kind.
func (c *Client) contentManagerPath(uid string) string {
	kind := "collection-types"
	if ct, ok := c.types.get(uid); ok && ct.Schema.Kind == "singleType" {
		kind = "single-types"
	}
	return "/content-manager/" + kind + "/" + url.PathEscape(uid)
}

// publicPath builds the public REST path for a content type.
func (c *Client) publicPath(uid string) string {
	return "/api/" + url.PathEscape(c.types.pluralFor(uid))
}

// ListEntries fetches a page of entries for the content type, preferring the
// admin surface (which sees drafts and every field regardless of API token
// permissions) and falling back to the public REST API.
func (c *Client) ListEntries(ctx context.Context, uid string, opts QueryOptions) (*EntryList, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, c.contentManagerPath(uid), opts.adminValues(), nil)
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.PublicRequest(ctx, http.MethodGet, c.publicPath(uid), opts.publicValues(), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("listing entries of %s: %w", uid, err)
	}
	list, err := parseEntryList(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding entries of %s: %w", uid, err)
	}
	return list, nil
}

// GetEntry fetches a single entry by its document id.
func (c *Client) GetEntry(ctx context.Context, uid, documentID string, opts QueryOptions) (json.RawMessage, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, c.contentManagerPath(uid)+"/"+url.PathEscape(documentID), opts.adminValues(), nil)
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.PublicRequest(ctx, http.MethodGet, c.publicPath(uid)+"/"+url.PathEscape(documentID), opts.publicValues(), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching entry %s of %s: %w", documentID, uid, err)
	}
	return unwrapData(raw), nil
}

// CreateEntry creates an entry. The admin surface takes the attributes
// directly; the public API wraps them in {data: ...}.
func (c *Client) CreateEntry(ctx context.Context, uid string, attributes map[string]any) (json.RawMessage, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPost, c.contentManagerPath(uid), nil, attributes)
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.PublicRequest(ctx, http.MethodPost, c.publicPath(uid), nil, map[string]any{"data": attributes})
	})
	if err != nil {
		return nil, fmt.Errorf("creating entry of %s: %w", uid, err)
	}
	return unwrapData(raw), nil
}

// UpdateEntry applies a partial update to an entry.
func (c *Client) UpdateEntry(ctx context.Context, uid, documentID string, attributes map[string]any) (json.RawMessage, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPut, c.contentManagerPath(uid)+"/"+url.PathEscape(documentID), nil, attributes)
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.PublicRequest(ctx, http.MethodPut, c.publicPath(uid)+"/"+url.PathEscape(documentID), nil, map[string]any{"data": attributes})
	})
	if err != nil {
		return nil, fmt.Errorf("updating entry %s of %s: %w", documentID, uid, err)
	}
	return unwrapData(raw), nil
}

// DeleteEntry removes an entry.
func (c *Client) DeleteEntry(ctx context.Context, uid, documentID string) error {
	_, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodDelete, c.contentManagerPath(uid)+"/"+url.PathEscape(documentID), nil, nil)
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.PublicRequest(ctx, http.MethodDelete, c.publicPath(uid)+"/"+url.PathEscape(documentID), nil, nil)
	})
	if err != nil {
		return fmt.Errorf("deleting entry %s of %s: %w", documentID, uid, err)
	}
	return nil
}

// PublishEntry publishes a draft entry. Publishing is a content-manager
// action; there is no public-surface equivalent.
func (c *Client) PublishEntry(ctx context.Context, uid, documentID string) (json.RawMessage, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPost, c.contentManagerPath(uid)+"/"+url.PathEscape(documentID)+"/actions/publish", nil, nil)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("publishing entry %s of %s: %w", documentID, uid, err)
	}
	return unwrapData(raw), nil
}

// UnpublishEntry reverts an entry to draft.
func (c *Client) UnpublishEntry(ctx context.Context, uid, documentID string) (json.RawMessage, error) {
	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodPost, c.contentManagerPath(uid)+"/"+url.PathEscape(documentID)+"/actions/unpublish", nil, nil)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("unpublishing entry %s of %s: %w", documentID, uid, err)
	}
	return unwrapData(raw), nil
}

// UpdateRelation mutates a relation field on an entry using the connect/
// disconnect/set verbs of the entity service. ids may be document ids or
// numeric ids depending on the CMS version.
func (c *Client) UpdateRelation(ctx context.Context, uid, documentID, field, verb string, ids []string) (json.RawMessage, error) {
	switch verb {
	case "connect", "disconnect", "set":
	default:
		return nil, fmt.Errorf("unknown relation verb %q (want connect, disconnect, or set)", verb)
	}
	refs := make([]any, len(ids))
	for i, id := range ids {
		refs[i] = id
	}
	attributes := map[string]any{
		field: map[string]any{verb: refs},
	}
	raw, err := c.UpdateEntry(ctx, uid, documentID, attributes)
	if err != nil {
		return nil, fmt.Errorf("relation %s on %s.%s: %w", verb, uid, field, err)
	}
	return raw, nil
}

// parseEntryList normalizes the two list response shapes into an EntryList.
func parseEntryList(raw json.RawMessage) (*EntryList, error) {
	var admin struct {
		Results    []json.RawMessage `json:"results"`
		Pagination *Pagination       `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &admin); err == nil && admin.Results != nil {
		list := &EntryList{Entries: admin.Results}
		if admin.Pagination != nil {
			list.Pagination = *admin.Pagination
		}
		return list, nil
	}

	var public struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			Pagination Pagination `json:"pagination"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(raw, &public); err != nil {
		return nil, err
	}
	return &EntryList{Entries: public.Data, Pagination: public.Meta.Pagination}, nil
}

// unwrapData strips the {data: ...} envelope the public API wraps single
// entities in. Admin responses come back unchanged.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}
