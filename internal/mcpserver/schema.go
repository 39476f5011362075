package mcpserver

import (
	"context"
	"strings"

	"github.com/aellingwood/strapi-mcp/internal/client"
	"github.com/aellingwood/strapi-mcp/internal/slug"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const restartNote = "Strapi restarts to apply schema changes; the new schema may take a moment to become available."

func (ss *StrapiServer) handleListContentTypes(ctx context.Context, req *mcp.CallToolRequest, input ListContentTypesInput) (*mcp.CallToolResult, ListContentTypesOutput, error) {
	types, err := ss.client.ListContentTypes(ctx, !input.IncludePlugins)
	if err != nil {
		return errResult("%s", describeErr(err)), ListContentTypesOutput{}, nil
	}

	briefs := make([]ContentTypeBrief, len(types))
	for i, ct := range types {
		briefs[i] = toContentTypeBrief(ct)
	}
	return nil, ListContentTypesOutput{Total: len(briefs), ContentTypes: briefs}, nil
}

func (ss *StrapiServer) handleGetContentTypeSchema(ctx context.Context, req *mcp.CallToolRequest, input GetContentTypeSchemaInput) (*mcp.CallToolResult, SchemaOutput, error) {
	if input.UID == "" {
		return errResult("uid is required"), SchemaOutput{}, nil
	}

	ct, err := ss.client.GetContentType(ctx, input.UID)
	if err != nil {
		return errResult("%s", describeErr(err)), SchemaOutput{}, nil
	}

	return nil, SchemaOutput{
		UID:             ct.UID,
		DisplayName:     ct.Schema.DisplayName,
		SingularName:    ct.Schema.SingularName,
		PluralName:      ct.Schema.PluralName,
		Description:     ct.Schema.Description,
		Kind:            ct.Schema.Kind,
		DraftAndPublish: ct.Schema.DraftAndPublish,
		Attributes:      ct.Schema.Attributes,
	}, nil
}

func (ss *StrapiServer) handleCreateContentType(ctx context.Context, req *mcp.CallToolRequest, input CreateContentTypeInput) (*mcp.CallToolResult, ContentTypeChangeOutput, error) {
	if input.DisplayName == "" {
		return errResult("displayName is required"), ContentTypeChangeOutput{}, nil
	}
	if len(input.Attributes) == 0 {
		return errResult("attributes must not be empty"), ContentTypeChangeOutput{}, nil
	}

	singular := input.SingularName
	if singular == "" {
		singular = slug.Make(input.DisplayName)
	}
	plural := input.PluralName
	if plural == "" {
		plural = singular + "s"
	}
	kind := input.Kind
	if kind == "" {
		kind = "collectionType"
	}
	if kind != "collectionType" && kind != "singleType" {
		return errResult("kind must be collectionType or singleType, got %q", kind), ContentTypeChangeOutput{}, nil
	}
	draftAndPublish := true
	if input.DraftAndPublish != nil {
		draftAndPublish = *input.DraftAndPublish
	}

	schema := client.ContentTypeSchema{
		DisplayName:     input.DisplayName,
		SingularName:    singular,
		PluralName:      plural,
		Description:     input.Description,
		Kind:            kind,
		DraftAndPublish: draftAndPublish,
		Attributes:      input.Attributes,
	}
	raw, err := ss.client.CreateContentType(ctx, schema)
	if err != nil {
		return errResult("%s", describeErr(err)), ContentTypeChangeOutput{}, nil
	}

	return nil, ContentTypeChangeOutput{
		UID:    "api::" + singular + "." + singular,
		Result: decodeAny(raw),
		Note:   restartNote,
	}, nil
}

func (ss *StrapiServer) handleUpdateContentType(ctx context.Context, req *mcp.CallToolRequest, input UpdateContentTypeInput) (*mcp.CallToolResult, ContentTypeChangeOutput, error) {
	if input.UID == "" {
		return errResult("uid is required"), ContentTypeChangeOutput{}, nil
	}

	// The builder API wants the whole schema back, so start from the current
	// one and overlay the requested changes.
	ct, err := ss.client.GetContentType(ctx, input.UID)
	if err != nil {
		return errResult("%s", describeErr(err)), ContentTypeChangeOutput{}, nil
	}

	schema := ct.Schema
	if input.DisplayName != "" {
		schema.DisplayName = input.DisplayName
	}
	if input.Description != "" {
		schema.Description = input.Description
	}
	if input.DraftAndPublish != nil {
		schema.DraftAndPublish = *input.DraftAndPublish
	}
	if input.Attributes != nil {
		schema.Attributes = input.Attributes
	}

	raw, err := ss.client.UpdateContentType(ctx, input.UID, schema)
	if err != nil {
		return errResult("%s", describeErr(err)), ContentTypeChangeOutput{}, nil
	}
	return nil, ContentTypeChangeOutput{UID: input.UID, Result: decodeAny(raw), Note: restartNote}, nil
}

func (ss *StrapiServer) handleDeleteContentType(ctx context.Context, req *mcp.CallToolRequest, input DeleteContentTypeInput) (*mcp.CallToolResult, ContentTypeChangeOutput, error) {
	if input.UID == "" {
		return errResult("uid is required"), ContentTypeChangeOutput{}, nil
	}
	if !strings.HasPrefix(input.UID, "api::") {
		return errResult("only user-defined api:: content types can be deleted, got %q", input.UID), ContentTypeChangeOutput{}, nil
	}

	if err := ss.client.DeleteContentType(ctx, input.UID); err != nil {
		return errResult("%s", describeErr(err)), ContentTypeChangeOutput{}, nil
	}
	return nil, ContentTypeChangeOutput{UID: input.UID, Note: restartNote}, nil
}

func (ss *StrapiServer) handleListComponents(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, ListComponentsOutput, error) {
	components, err := ss.client.ListComponents(ctx)
	if err != nil {
		return errResult("%s", describeErr(err)), ListComponentsOutput{}, nil
	}

	briefs := make([]ComponentBrief, len(components))
	for i, comp := range components {
		briefs[i] = ComponentBrief{
			UID:         comp.UID,
			Category:    comp.Category,
			DisplayName: comp.Schema.DisplayName,
		}
	}
	return nil, ListComponentsOutput{Total: len(briefs), Components: briefs}, nil
}

func (ss *StrapiServer) handleGetComponentSchema(ctx context.Context, req *mcp.CallToolRequest, input GetComponentSchemaInput) (*mcp.CallToolResult, SchemaOutput, error) {
	if input.UID == "" {
		return errResult("uid is required"), SchemaOutput{}, nil
	}

	comp, err := ss.client.GetComponent(ctx, input.UID)
	if err != nil {
		return errResult("%s", describeErr(err)), SchemaOutput{}, nil
	}

	return nil, SchemaOutput{
		UID:         comp.UID,
		DisplayName: comp.Schema.DisplayName,
		Description: comp.Schema.Description,
		Category:    comp.Category,
		Attributes:  comp.Schema.Attributes,
	}, nil
}

func (ss *StrapiServer) handleCreateComponent(ctx context.Context, req *mcp.CallToolRequest, input CreateComponentInput) (*mcp.CallToolResult, ContentTypeChangeOutput, error) {
	if input.Category == "" || input.DisplayName == "" {
		return errResult("category and displayName are required"), ContentTypeChangeOutput{}, nil
	}
	if len(input.Attributes) == 0 {
		return errResult("attributes must not be empty"), ContentTypeChangeOutput{}, nil
	}

	schema := client.ContentTypeSchema{
		DisplayName: input.DisplayName,
		Attributes:  input.Attributes,
	}
	raw, err := ss.client.CreateComponent(ctx, input.Category, schema)
	if err != nil {
		return errResult("%s", describeErr(err)), ContentTypeChangeOutput{}, nil
	}

	return nil, ContentTypeChangeOutput{
		UID:    input.Category + "." + slug.Make(input.DisplayName),
		Result: decodeAny(raw),
		Note:   restartNote,
	}, nil
}

func (ss *StrapiServer) handleUpdateComponent(ctx context.Context, req *mcp.CallToolRequest, input UpdateComponentInput) (*mcp.CallToolResult, ContentTypeChangeOutput, error) {
	if input.UID == "" {
		return errResult("uid is required"), ContentTypeChangeOutput{}, nil
	}
	if len(input.Attributes) == 0 {
		return errResult("attributes must not be empty"), ContentTypeChangeOutput{}, nil
	}

	raw, err := ss.client.UpdateComponent(ctx, input.UID, input.Attributes)
	if err != nil {
		return errResult("%s", describeErr(err)), ContentTypeChangeOutput{}, nil
	}
	return nil, ContentTypeChangeOutput{UID: input.UID, Result: decodeAny(raw), Note: restartNote}, nil
}

func (ss *StrapiServer) handleListLocales(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, ListLocalesOutput, error) {
	locales, err := ss.client.ListLocales(ctx)
	if err != nil {
		return errResult("%s", describeErr(err)), ListLocalesOutput{}, nil
	}

	infos := make([]LocaleInfo, len(locales))
	for i, l := range locales {
		infos[i] = toLocaleInfo(l)
	}
	return nil, ListLocalesOutput{Total: len(infos), Locales: infos}, nil
}

func (ss *StrapiServer) handleCreateLocale(ctx context.Context, req *mcp.CallToolRequest, input CreateLocaleInput) (*mcp.CallToolResult, LocaleInfo, error) {
	if input.Code == "" {
		return errResult("code is required"), LocaleInfo{}, nil
	}
	name := input.Name
	if name == "" {
		name = input.Code
	}

	locale, err := ss.client.CreateLocale(ctx, input.Code, name, input.IsDefault)
	if err != nil {
		return errResult("%s", describeErr(err)), LocaleInfo{}, nil
	}
	return nil, toLocaleInfo(*locale), nil
}

func (ss *StrapiServer) handleDeleteLocale(ctx context.Context, req *mcp.CallToolRequest, input DeleteLocaleInput) (*mcp.CallToolResult, DeleteLocaleOutput, error) {
	if input.ID == 0 {
		return errResult("id is required"), DeleteLocaleOutput{}, nil
	}

	if err := ss.client.DeleteLocale(ctx, input.ID); err != nil {
		return errResult("%s", describeErr(err)), DeleteLocaleOutput{}, nil
	}
	return nil, DeleteLocaleOutput{Deleted: true, ID: input.ID}, nil
}

func toContentTypeBrief(ct client.ContentType) ContentTypeBrief {
	return ContentTypeBrief{
		UID:             ct.UID,
		DisplayName:     ct.Schema.DisplayName,
		Kind:            ct.Schema.Kind,
		SingularName:    ct.Schema.SingularName,
		PluralName:      ct.Schema.PluralName,
		DraftAndPublish: ct.Schema.DraftAndPublish,
		Plugin:          ct.Plugin,
	}
}
