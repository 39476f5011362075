package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ss *StrapiServer) registerTools() {
	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "list_content_types",
		Description: "List the content types defined in Strapi. Returns each type's UID, display name, kind (collection or single), and API ids. Plugin types (users, files, locales) are hidden unless includePlugins is set.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "List Content Types",
		},
	}, ss.handleListContentTypes)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "get_content_type_schema",
		Description: "Get the full schema for one content type: attribute names, types, relations, and whether draft/publish is enabled. Use this before creating or updating entries to learn the expected fields.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "Get Content Type Schema",
		},
	}, ss.handleGetContentTypeSchema)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "get_entries",
		Description: "List entries of a content type with filtering, sorting, pagination, field selection, relation population, locale, and draft/published status. Filters use Strapi operators ($eq, $contains, $in, $gt, ...).",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "Get Entries",
		},
	}, ss.handleGetEntries)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "get_entry",
		Description: "Get a single entry by its document ID, optionally populating relations and selecting fields.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "Get Entry",
		},
	}, ss.handleGetEntry)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "create_entry",
		Description: "Create a new entry for a content type. Attributes go in data; uid-type fields (slugs) are generated from the title when omitted. New entries start as drafts when the type has draft/publish enabled.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(true),
			Title:           "Create Entry",
		},
	}, ss.handleCreateEntry)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "update_entry",
		Description: "Update attributes of an existing entry by document ID. Only the attributes present in data change.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint: true,
			OpenWorldHint:  ptr(true),
			Title:          "Update Entry",
		},
	}, ss.handleUpdateEntry)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "delete_entry",
		Description: "Delete an entry by document ID. This removes both the draft and any published version.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(true),
			IdempotentHint:  true,
			OpenWorldHint:   ptr(true),
			Title:           "Delete Entry",
		},
	}, ss.handleDeleteEntry)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "publish_entry",
		Description: "Publish the draft version of an entry, making it visible on the public API. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint: true,
			OpenWorldHint:  ptr(true),
			Title:          "Publish Entry",
		},
	}, ss.handlePublishEntry)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "unpublish_entry",
		Description: "Unpublish an entry, removing it from the public API while keeping the draft. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint: true,
			OpenWorldHint:  ptr(true),
			Title:          "Unpublish Entry",
		},
	}, ss.handleUnpublishEntry)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "connect_relation",
		Description: "Add related entries to a relation field without touching the existing relations.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(true),
			Title:           "Connect Relation",
		},
	}, ss.handleConnectRelation)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "disconnect_relation",
		Description: "Remove specific related entries from a relation field, leaving the rest in place.",
		Annotations: &mcp.ToolAnnotations{
			OpenWorldHint: ptr(true),
			Title:         "Disconnect Relation",
		},
	}, ss.handleDisconnectRelation)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "set_relation",
		Description: "Replace all relations of a field with exactly the given entries. An empty list clears the relation.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint: true,
			OpenWorldHint:  ptr(true),
			Title:          "Set Relation",
		},
	}, ss.handleSetRelation)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "upload_media",
		Description: "Upload a file to the Strapi media library. Content is passed base64-encoded; alt text and caption are attached as file metadata.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(true),
			Title:           "Upload Media",
		},
	}, ss.handleUploadMedia)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "list_media",
		Description: "List files in the media library with pagination. Returns each file's ID, name, URL, MIME type, and size.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "List Media",
		},
	}, ss.handleListMedia)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "delete_media",
		Description: "Delete a file from the media library by its numeric ID.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(true),
			IdempotentHint:  true,
			OpenWorldHint:   ptr(true),
			Title:           "Delete Media",
		},
	}, ss.handleDeleteMedia)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "list_components",
		Description: "List the reusable components defined in the content-type builder, grouped by category. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "List Components",
		},
	}, ss.handleListComponents)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "get_component_schema",
		Description: "Get the full schema for one component: its category, display name, and attribute definitions. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "Get Component Schema",
		},
	}, ss.handleGetComponentSchema)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "create_component",
		Description: "Create a reusable component in the given category. Strapi restarts to apply schema changes. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(true),
			Title:           "Create Component",
		},
	}, ss.handleCreateComponent)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "update_component",
		Description: "Replace a component's attribute definitions. Strapi restarts to apply the change. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			OpenWorldHint: ptr(true),
			Title:         "Update Component",
		},
	}, ss.handleUpdateComponent)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "create_content_type",
		Description: "Create a new content type with the given attributes. Singular and plural API ids are derived from the display name when omitted. Strapi restarts to apply schema changes, so allow a moment before using the new type. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(true),
			Title:           "Create Content Type",
		},
	}, ss.handleCreateContentType)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "update_content_type",
		Description: "Update a content type's display name, description, draft/publish setting, or attribute definitions. Strapi restarts to apply the change. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			OpenWorldHint: ptr(true),
			Title:         "Update Content Type",
		},
	}, ss.handleUpdateContentType)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "delete_content_type",
		Description: "Delete a content type and all of its entries. This cannot be undone. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(true),
			OpenWorldHint:   ptr(true),
			Title:           "Delete Content Type",
		},
	}, ss.handleDeleteContentType)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "list_locales",
		Description: "List the locales configured for internationalized content. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
			Title:         "List Locales",
		},
	}, ss.handleListLocales)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "create_locale",
		Description: "Add a new locale for internationalized content, e.g. fr or pt-BR. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(true),
			Title:           "Create Locale",
		},
	}, ss.handleCreateLocale)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "delete_locale",
		Description: "Delete a locale by its numeric ID. Localized entries in that locale become unreachable. Requires admin credentials.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(true),
			IdempotentHint:  true,
			OpenWorldHint:   ptr(true),
			Title:           "Delete Locale",
		},
	}, ss.handleDeleteLocale)

	mcp.AddTool(ss.server, &mcp.Tool{
		Name:        "strapi_rest",
		Description: "Escape hatch: send a raw REST request to any Strapi endpoint the other tools do not cover. Authentication is handled automatically; set surface to admin or public to force specific credentials.",
		Annotations: &mcp.ToolAnnotations{
			OpenWorldHint: ptr(true),
			Title:         "Raw REST Request",
		},
	}, ss.handleStrapiRest)
}
