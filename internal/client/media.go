package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// UploadMedia uploads one file to the media library. Both surfaces accept
// uploads at POST /upload; the admin session is preferred so the file lands
// regardless of the API token's upload permission. The multipart body is
// rebuilt per attempt because a retried request cannot reuse a consumed
// reader.
func (c *Client) UploadMedia(ctx context.Context, filename string, data []byte, fileInfo map[string]any) (*MediaFile, error) {
	send := func(ctx context.Context, authorization string) (json.RawMessage, error) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("files", filename)
		if err != nil {
			return nil, fmt.Errorf("building upload form: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, fmt.Errorf("building upload form: %w", err)
		}
		if len(fileInfo) > 0 {
			info, err := json.Marshal(fileInfo)
			if err != nil {
				return nil, fmt.Errorf("encoding fileInfo: %w", err)
			}
			if err := writer.WriteField("fileInfo", string(info)); err != nil {
				return nil, fmt.Errorf("building upload form: %w", err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("building upload form: %w", err)
		}

		ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
		if err != nil {
			return nil, fmt.Errorf("building upload request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return c.send(req, "/upload", authorization)
	}

	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.withAdminAuth(ctx, func(ctx context.Context, token string) (json.RawMessage, error) {
			return send(ctx, "Bearer "+token)
		})
	}, func(ctx context.Context) (json.RawMessage, error) {
		authorization := ""
		if c.apiToken != "" {
			authorization = "Bearer " + c.apiToken
		}
		return send(ctx, authorization)
	})
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", filename, err)
	}

	var files []MediaFile
	if err := json.Unmarshal(raw, &files); err != nil || len(files) == 0 {
		return nil, fmt.Errorf("uploading %s: unexpected upload response", filename)
	}
	return &files[0], nil
}

// ListMedia returns a page of media library files.
func (c *Client) ListMedia(ctx context.Context, page, pageSize int) ([]MediaFile, *Pagination, error) {
	adminParams := url.Values{}
	if page > 0 {
		adminParams.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		adminParams.Set("pageSize", strconv.Itoa(pageSize))
	}

	raw, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodGet, "/upload/files", adminParams, nil)
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.PublicRequest(ctx, http.MethodGet, "/api/upload/files", nil, nil)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing media: %w", err)
	}

	// Admin shape: {results, pagination}. Public shape: a bare array.
	var admin struct {
		Results    []MediaFile `json:"results"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &admin); err == nil && admin.Results != nil {
		return admin.Results, admin.Pagination, nil
	}
	var files []MediaFile
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, nil, fmt.Errorf("decoding media list: %w", err)
	}
	return files, nil, nil
}

// DeleteMedia removes a file from the media library by numeric id.
func (c *Client) DeleteMedia(ctx context.Context, id int) error {
	path := "/upload/files/" + strconv.Itoa(id)
	_, err := c.dispatch(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.AdminRequest(ctx, http.MethodDelete, path, nil, nil)
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.PublicRequest(ctx, http.MethodDelete, "/api/upload/files/"+strconv.Itoa(id), nil, nil)
	})
	if err != nil {
		return fmt.Errorf("deleting media %d: %w", id, err)
	}
	return nil
}
