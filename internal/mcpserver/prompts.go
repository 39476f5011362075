package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ss *StrapiServer) registerPrompts() {
	ss.server.AddPrompt(&mcp.Prompt{
		Name:        "new_entry",
		Description: "Draft a new entry for a content type, following its schema",
		Arguments: []*mcp.PromptArgument{
			{Name: "contentType", Description: "Content type UID, e.g. api::article.article", Required: true},
			{Name: "topic", Description: "What the entry should be about"},
			{Name: "locale", Description: "Locale code for the entry (leave empty for the default)"},
		},
	}, ss.handleNewEntryPrompt)

	ss.server.AddPrompt(&mcp.Prompt{
		Name:        "content_audit",
		Description: "Audit the draft/published state and completeness of a collection",
		Arguments: []*mcp.PromptArgument{
			{Name: "contentType", Description: "Content type UID to audit", Required: true},
		},
	}, ss.handleContentAuditPrompt)
}

func (ss *StrapiServer) handleNewEntryPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	contentType := args["contentType"]
	topic := args["topic"]
	locale := args["locale"]

	var schemaText string
	if ct, err := ss.client.GetContentType(ctx, contentType); err == nil {
		fields := make([]string, 0, len(ct.Schema.Attributes))
		for name, def := range ct.Schema.Attributes {
			attrType := "unknown"
			if m, ok := def.(map[string]any); ok {
				if t, ok := m["type"].(string); ok {
					attrType = t
				}
			}
			fields = append(fields, fmt.Sprintf("- %s (%s)", name, attrType))
		}
		schemaText = fmt.Sprintf("The %q content type (%s) has these attributes:\n%s",
			ct.Schema.DisplayName, contentType, strings.Join(fields, "\n"))
	} else {
		schemaText = fmt.Sprintf("Call get_content_type_schema with uid %q first to learn the expected attributes.", contentType)
	}

	localeText := ""
	if locale != "" {
		localeText = fmt.Sprintf("\nWrite the content in the %q locale.", locale)
	}
	if topic == "" {
		topic = "(ask the user what the entry should cover)"
	}

	text := fmt.Sprintf(`Create a new entry in Strapi.

Content type: %s
Topic: %s

%s%s

Steps:
1. Draft attribute values that fit the schema above. Leave uid-type slug fields empty; they are generated from the title.
2. Call create_entry with the drafted data. The entry is created as a draft.
3. Show the user the created entry and ask whether to publish it with publish_entry.`, contentType, topic, schemaText, localeText)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Draft a new %s entry", contentType),
		Messages: []*mcp.PromptMessage{
			{
				Role:    mcp.Role("user"),
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}

func (ss *StrapiServer) handleContentAuditPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	contentType := args["contentType"]

	text := fmt.Sprintf(`Audit the content of the %q collection in Strapi.

Steps:
1. Call get_content_type_schema with uid %q to learn the attributes and whether draft/publish is enabled.
2. Call get_entries with status "draft" and again with status "published" to compare the two sets.
3. For each draft, note how long it has been unpublished (updatedAt) and whether required attributes are filled in.
4. Report: counts of drafts vs published, stale drafts worth publishing or deleting, and entries with missing or thin content.

Summarize findings as a short table followed by recommended actions.`, contentType, contentType)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Audit content: %s", contentType),
		Messages: []*mcp.PromptMessage{
			{
				Role:    mcp.Role("user"),
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}
