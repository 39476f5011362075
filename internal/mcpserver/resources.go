package mcpserver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ss *StrapiServer) registerResources() {
	// Static resources
	ss.server.AddResource(&mcp.Resource{
		URI:         "strapi://config",
		Name:        "Connection Configuration",
		Description: "Resolved connection settings with credentials redacted",
		MIMEType:    "application/json",
	}, ss.handleConfigResource)

	ss.server.AddResource(&mcp.Resource{
		URI:         "strapi://content-types",
		Name:        "Content Types",
		Description: "User-defined content types with their API ids (no attributes)",
		MIMEType:    "application/json",
	}, ss.handleContentTypesResource)

	ss.server.AddResource(&mcp.Resource{
		URI:         "strapi://components",
		Name:        "Components",
		Description: "Reusable components grouped by category",
		MIMEType:    "application/json",
	}, ss.handleComponentsResource)

	ss.server.AddResource(&mcp.Resource{
		URI:         "strapi://locales",
		Name:        "Locales",
		Description: "Locales configured for internationalized content",
		MIMEType:    "application/json",
	}, ss.handleLocalesResource)

	// Resource templates (parameterized URIs)
	ss.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "strapi://content-types/{uid}",
		Name:        "Content Type Schema",
		Description: "Full schema for a single content type",
		MIMEType:    "application/json",
	}, ss.handleContentTypeSchemaResource)
}

func jsonResource(uri, data string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: data},
		},
	}
}

func marshalResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, string(b)), nil
}

func (ss *StrapiServer) handleConfigResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return marshalResource(req.Params.URI, ss.cfg.Redacted())
}

func (ss *StrapiServer) handleContentTypesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	types, err := ss.client.ListContentTypes(ctx, true)
	if err != nil {
		return nil, err
	}

	briefs := make([]ContentTypeBrief, len(types))
	for i, ct := range types {
		briefs[i] = toContentTypeBrief(ct)
	}
	result := map[string]any{
		"total":        len(briefs),
		"contentTypes": briefs,
	}
	return marshalResource(req.Params.URI, result)
}

func (ss *StrapiServer) handleComponentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	components, err := ss.client.ListComponents(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]ComponentBrief)
	for _, comp := range components {
		byCategory[comp.Category] = append(byCategory[comp.Category], ComponentBrief{
			UID:         comp.UID,
			Category:    comp.Category,
			DisplayName: comp.Schema.DisplayName,
		})
	}
	result := map[string]any{
		"total":      len(components),
		"categories": byCategory,
	}
	return marshalResource(req.Params.URI, result)
}

func (ss *StrapiServer) handleLocalesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	locales, err := ss.client.ListLocales(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]LocaleInfo, len(locales))
	for i, l := range locales {
		infos[i] = toLocaleInfo(l)
	}
	result := map[string]any{
		"total":   len(infos),
		"locales": infos,
	}
	return marshalResource(req.Params.URI, result)
}

func (ss *StrapiServer) handleContentTypeSchemaResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// Extract {uid} from URI: "strapi://content-types/{uid}"
	uri := req.Params.URI
	prefix := "strapi://content-types/"
	if !strings.HasPrefix(uri, prefix) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	uid := strings.TrimPrefix(uri, prefix)
	if uid == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	ct, err := ss.client.GetContentType(ctx, uid)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	return marshalResource(uri, ct)
}
