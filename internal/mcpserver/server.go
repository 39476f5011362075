package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aellingwood/strapi-mcp/internal/client"
	"github.com/aellingwood/strapi-mcp/internal/config"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StrapiServer is the MCP server bridging MCP clients to a Strapi instance.
type StrapiServer struct {
	server  *mcp.Server
	client  *client.Client
	cfg     *config.Config
	version string
}

// New creates a new StrapiServer backed by the given API client.
func New(cfg *config.Config, c *client.Client, version string) *StrapiServer {
	ss := &StrapiServer{
		client:  c,
		cfg:     cfg,
		version: version,
	}

	ss.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "strapi-mcp",
			Version: version,
		},
		nil,
	)

	ss.registerResources()
	ss.registerTools()
	ss.registerPrompts()

	return ss
}

// Run starts the MCP server on the given transport.
func (ss *StrapiServer) Run(ctx context.Context, transport mcp.Transport) error {
	return ss.server.Run(ctx, transport)
}

func ptr[T any](v T) *T {
	return &v
}

// errResult wraps a message in an error tool result. Tool-level failures are
// reported this way rather than as protocol errors so the calling model can
// read them and correct course.
func errResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

// describeErr turns client errors into messages that tell the caller what to
// fix, not just what broke.
func describeErr(err error) string {
	switch {
	case errors.Is(err, client.ErrPrivilegedRequired),
		errors.Is(err, client.ErrAdminCredentialsMissing):
		return fmt.Sprintf("%v. Set STRAPI_ADMIN_EMAIL and STRAPI_ADMIN_PASSWORD to use admin-only operations.", err)
	case errors.Is(err, client.ErrLoginRateLimited):
		return fmt.Sprintf("%v. The server is rate limiting admin logins; wait before retrying.", err)
	case errors.Is(err, client.ErrLoginFailed):
		return fmt.Sprintf("%v. Check STRAPI_ADMIN_EMAIL and STRAPI_ADMIN_PASSWORD.", err)
	default:
		return err.Error()
	}
}

// decodeAny converts raw response JSON into a value the result schema can
// carry. Undecodable payloads are passed through as a string rather than
// dropped.
func decodeAny(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func decodeEntries(raws []json.RawMessage) []any {
	entries := make([]any, len(raws))
	for i, r := range raws {
		entries[i] = decodeAny(r)
	}
	return entries
}

func toPaginationInfo(p client.Pagination) PaginationInfo {
	return PaginationInfo{
		Page:      p.Page,
		PageSize:  p.PageSize,
		PageCount: p.PageCount,
		Total:     p.Total,
	}
}

func toMediaFileInfo(f client.MediaFile) MediaFileInfo {
	return MediaFileInfo{
		ID:        f.ID,
		Name:      f.Name,
		URL:       f.URL,
		Mime:      f.Mime,
		SizeKB:    f.Size,
		AltText:   f.Alt,
		Extension: f.Ext,
	}
}

func toLocaleInfo(l client.Locale) LocaleInfo {
	return LocaleInfo{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		IsDefault: l.IsDefault,
	}
}
