package mcpserver

import (
	"context"

	"github.com/aellingwood/strapi-mcp/internal/client"
	"github.com/aellingwood/strapi-mcp/internal/slug"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ss *StrapiServer) handleGetEntries(ctx context.Context, req *mcp.CallToolRequest, input GetEntriesInput) (*mcp.CallToolResult, GetEntriesOutput, error) {
	if input.UID == "" {
		return errResult("uid is required"), GetEntriesOutput{}, nil
	}

	opts := client.QueryOptions{
		Filters:  input.Filters,
		Sort:     input.Sort,
		Page:     input.Page,
		PageSize: input.PageSize,
		Populate: input.Populate,
		Fields:   input.Fields,
		Locale:   input.Locale,
		Status:   input.Status,
	}
	list, err := ss.client.ListEntries(ctx, input.UID, opts)
	if err != nil {
		return errResult("%s", describeErr(err)), GetEntriesOutput{}, nil
	}

	return nil, GetEntriesOutput{
		Pagination: toPaginationInfo(list.Pagination),
		Entries:    decodeEntries(list.Entries),
	}, nil
}

func (ss *StrapiServer) handleGetEntry(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInput) (*mcp.CallToolResult, EntryOutput, error) {
	if input.UID == "" || input.DocumentID == "" {
		return errResult("uid and documentId are required"), EntryOutput{}, nil
	}

	opts := client.QueryOptions{
		Populate: input.Populate,
		Fields:   input.Fields,
		Locale:   input.Locale,
		Status:   input.Status,
	}
	raw, err := ss.client.GetEntry(ctx, input.UID, input.DocumentID, opts)
	if err != nil {
		return errResult("%s", describeErr(err)), EntryOutput{}, nil
	}
	return nil, EntryOutput{Entry: decodeAny(raw)}, nil
}

func (ss *StrapiServer) handleCreateEntry(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, EntryOutput, error) {
	if input.UID == "" {
		return errResult("uid is required"), EntryOutput{}, nil
	}
	if len(input.Data) == 0 {
		return errResult("data is required"), EntryOutput{}, nil
	}

	data := ss.fillSlugDefaults(ctx, input.UID, input.Data)

	raw, err := ss.client.CreateEntry(ctx, input.UID, data)
	if err != nil {
		return errResult("%s", describeErr(err)), EntryOutput{}, nil
	}
	return nil, EntryOutput{Entry: decodeAny(raw)}, nil
}

// fillSlugDefaults generates values for uid-type attributes missing from the
// payload, slugging the entry title. Schema lookup needs admin access; when
// that is unavailable the payload passes through untouched and Strapi applies
// its own defaults.
func (ss *StrapiServer) fillSlugDefaults(ctx context.Context, uid string, data map[string]any) map[string]any {
	title, ok := data["title"].(string)
	if !ok || title == "" {
		return data
	}
	ct, err := ss.client.GetContentType(ctx, uid)
	if err != nil {
		return data
	}
	for name, def := range ct.Schema.Attributes {
		attr, ok := def.(map[string]any)
		if !ok || attr["type"] != "uid" {
			continue
		}
		if _, present := data[name]; !present {
			data[name] = slug.Make(title)
		}
	}
	return data
}

func (ss *StrapiServer) handleUpdateEntry(ctx context.Context, req *mcp.CallToolRequest, input UpdateEntryInput) (*mcp.CallToolResult, EntryOutput, error) {
	if input.UID == "" || input.DocumentID == "" {
		return errResult("uid and documentId are required"), EntryOutput{}, nil
	}
	if len(input.Data) == 0 {
		return errResult("data is required"), EntryOutput{}, nil
	}

	raw, err := ss.client.UpdateEntry(ctx, input.UID, input.DocumentID, input.Data)
	if err != nil {
		return errResult("%s", describeErr(err)), EntryOutput{}, nil
	}
	return nil, EntryOutput{Entry: decodeAny(raw)}, nil
}

func (ss *StrapiServer) handleDeleteEntry(ctx context.Context, req *mcp.CallToolRequest, input DeleteEntryInput) (*mcp.CallToolResult, DeleteEntryOutput, error) {
	if input.UID == "" || input.DocumentID == "" {
		return errResult("uid and documentId are required"), DeleteEntryOutput{}, nil
	}

	if err := ss.client.DeleteEntry(ctx, input.UID, input.DocumentID); err != nil {
		return errResult("%s", describeErr(err)), DeleteEntryOutput{}, nil
	}
	return nil, DeleteEntryOutput{Deleted: true, DocumentID: input.DocumentID}, nil
}

func (ss *StrapiServer) handlePublishEntry(ctx context.Context, req *mcp.CallToolRequest, input PublishEntryInput) (*mcp.CallToolResult, EntryOutput, error) {
	if input.UID == "" || input.DocumentID == "" {
		return errResult("uid and documentId are required"), EntryOutput{}, nil
	}

	raw, err := ss.client.PublishEntry(ctx, input.UID, input.DocumentID)
	if err != nil {
		return errResult("%s", describeErr(err)), EntryOutput{}, nil
	}
	return nil, EntryOutput{Entry: decodeAny(raw)}, nil
}

func (ss *StrapiServer) handleUnpublishEntry(ctx context.Context, req *mcp.CallToolRequest, input PublishEntryInput) (*mcp.CallToolResult, EntryOutput, error) {
	if input.UID == "" || input.DocumentID == "" {
		return errResult("uid and documentId are required"), EntryOutput{}, nil
	}

	raw, err := ss.client.UnpublishEntry(ctx, input.UID, input.DocumentID)
	if err != nil {
		return errResult("%s", describeErr(err)), EntryOutput{}, nil
	}
	return nil, EntryOutput{Entry: decodeAny(raw)}, nil
}

func (ss *StrapiServer) handleConnectRelation(ctx context.Context, req *mcp.CallToolRequest, input RelationInput) (*mcp.CallToolResult, EntryOutput, error) {
	return ss.updateRelation(ctx, input, "connect")
}

func (ss *StrapiServer) handleDisconnectRelation(ctx context.Context, req *mcp.CallToolRequest, input RelationInput) (*mcp.CallToolResult, EntryOutput, error) {
	return ss.updateRelation(ctx, input, "disconnect")
}

func (ss *StrapiServer) handleSetRelation(ctx context.Context, req *mcp.CallToolRequest, input RelationInput) (*mcp.CallToolResult, EntryOutput, error) {
	return ss.updateRelation(ctx, input, "set")
}

func (ss *StrapiServer) updateRelation(ctx context.Context, input RelationInput, verb string) (*mcp.CallToolResult, EntryOutput, error) {
	if input.UID == "" || input.DocumentID == "" || input.Field == "" {
		return errResult("uid, documentId, and field are required"), EntryOutput{}, nil
	}
	if verb != "set" && len(input.DocumentIDs) == 0 {
		return errResult("documentIds must not be empty"), EntryOutput{}, nil
	}

	raw, err := ss.client.UpdateRelation(ctx, input.UID, input.DocumentID, input.Field, verb, input.DocumentIDs)
	if err != nil {
		return errResult("%s", describeErr(err)), EntryOutput{}, nil
	}
	return nil, EntryOutput{Entry: decodeAny(raw)}, nil
}
