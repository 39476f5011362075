// Package mcpserver implements an MCP (Model Context Protocol) server for a
// Strapi instance, exposing its content types, entries, media library, and
// locales as structured tools, resources, and prompts for MCP clients.
package mcpserver

// ContentTypeBrief is a lightweight content-type summary without attributes.
type ContentTypeBrief struct {
	UID             string `json:"uid"`
	DisplayName     string `json:"displayName"`
	Kind            string `json:"kind,omitempty"`
	SingularName    string `json:"singularName,omitempty"`
	PluralName      string `json:"pluralName,omitempty"`
	DraftAndPublish bool   `json:"draftAndPublish"`
	Plugin          string `json:"plugin,omitempty"`
}

// ComponentBrief is a lightweight component summary without attributes.
type ComponentBrief struct {
	UID         string `json:"uid"`
	Category    string `json:"category"`
	DisplayName string `json:"displayName"`
}

// MediaFileInfo describes one file in the media library.
type MediaFileInfo struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Mime      string  `json:"mime,omitempty"`
	SizeKB    float64 `json:"sizeKB"`
	AltText   string  `json:"altText,omitempty"`
	Extension string  `json:"extension,omitempty"`
}

// LocaleInfo describes one configured i18n locale.
type LocaleInfo struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// PaginationInfo describes the page window of a list result.
type PaginationInfo struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// ListContentTypesInput is the input for the list_content_types tool.
type ListContentTypesInput struct {
	IncludePlugins bool `json:"includePlugins,omitempty" jsonschema:"Include plugin-provided types (users, files, locales) alongside user-defined api:: types (default: false)"`
}

// ListContentTypesOutput is the output from the list_content_types tool.
type ListContentTypesOutput struct {
	Total        int                `json:"total"`
	ContentTypes []ContentTypeBrief `json:"contentTypes"`
}

// GetContentTypeSchemaInput is the input for the get_content_type_schema tool.
type GetContentTypeSchemaInput struct {
	UID string `json:"uid" jsonschema:"Content type UID, e.g. api::article.article"`
}

// SchemaOutput is the output from the get_content_type_schema and
// get_component_schema tools.
type SchemaOutput struct {
	UID             string         `json:"uid"`
	DisplayName     string         `json:"displayName"`
	SingularName    string         `json:"singularName,omitempty"`
	PluralName      string         `json:"pluralName,omitempty"`
	Description     string         `json:"description,omitempty"`
	Kind            string         `json:"kind,omitempty"`
	Category        string         `json:"category,omitempty"`
	DraftAndPublish bool           `json:"draftAndPublish"`
	Attributes      map[string]any `json:"attributes"`
}

// GetEntriesInput is the input for the get_entries tool.
type GetEntriesInput struct {
	UID      string         `json:"uid"                jsonschema:"Content type UID, e.g. api::article.article"`
	Filters  map[string]any `json:"filters,omitempty"  jsonschema:"Filter object using Strapi operators, e.g. {\"title\": {\"$contains\": \"go\"}}"`
	Sort     []string       `json:"sort,omitempty"     jsonschema:"Sort fields, e.g. [\"createdAt:desc\"]"`
	Page     int            `json:"page,omitempty"     jsonschema:"Page number, 1-based (default: 1)"`
	PageSize int            `json:"pageSize,omitempty" jsonschema:"Entries per page, 1-100 (default: 25)"`
	Populate []string       `json:"populate,omitempty" jsonschema:"Relations to populate; [\"*\"] populates one level of everything"`
	Fields   []string       `json:"fields,omitempty"   jsonschema:"Restrict returned attributes to these fields"`
	Locale   string         `json:"locale,omitempty"   jsonschema:"Locale code for localized content, e.g. en, fr"`
	Status   string         `json:"status,omitempty"   jsonschema:"Entry status: draft or published"`
}

// GetEntriesOutput is the output from the get_entries tool.
type GetEntriesOutput struct {
	Pagination PaginationInfo `json:"pagination"`
	Entries    []any          `json:"entries"`
}

// GetEntryInput is the input for the get_entry tool.
type GetEntryInput struct {
	UID        string   `json:"uid"                jsonschema:"Content type UID, e.g. api::article.article"`
	DocumentID string   `json:"documentId"         jsonschema:"Document ID of the entry"`
	Populate   []string `json:"populate,omitempty" jsonschema:"Relations to populate"`
	Fields     []string `json:"fields,omitempty"   jsonschema:"Restrict returned attributes to these fields"`
	Locale     string   `json:"locale,omitempty"   jsonschema:"Locale code for localized content"`
	Status     string   `json:"status,omitempty"   jsonschema:"Entry status: draft or published"`
}

// EntryOutput is the output from tools that return a single entry.
type EntryOutput struct {
	Entry any `json:"entry"`
}

// CreateEntryInput is the input for the create_entry tool.
type CreateEntryInput struct {
	UID  string         `json:"uid"  jsonschema:"Content type UID, e.g. api::article.article"`
	Data map[string]any `json:"data" jsonschema:"Entry attributes; uid-type fields default to a slug of the title when omitted"`
}

// UpdateEntryInput is the input for the update_entry tool.
type UpdateEntryInput struct {
	UID        string         `json:"uid"        jsonschema:"Content type UID"`
	DocumentID string         `json:"documentId" jsonschema:"Document ID of the entry to update"`
	Data       map[string]any `json:"data"       jsonschema:"Attributes to change; omitted attributes keep their values"`
}

// DeleteEntryInput is the input for the delete_entry tool.
type DeleteEntryInput struct {
	UID        string `json:"uid"        jsonschema:"Content type UID"`
	DocumentID string `json:"documentId" jsonschema:"Document ID of the entry to delete"`
}

// DeleteEntryOutput is the output from the delete_entry tool.
type DeleteEntryOutput struct {
	Deleted    bool   `json:"deleted"`
	DocumentID string `json:"documentId"`
}

// PublishEntryInput is the input for the publish_entry and unpublish_entry
// tools.
type PublishEntryInput struct {
	UID        string `json:"uid"        jsonschema:"Content type UID"`
	DocumentID string `json:"documentId" jsonschema:"Document ID of the entry"`
}

// RelationInput is the input for the connect_relation, disconnect_relation,
// and set_relation tools.
type RelationInput struct {
	UID         string   `json:"uid"         jsonschema:"Content type UID of the entry being modified"`
	DocumentID  string   `json:"documentId"  jsonschema:"Document ID of the entry being modified"`
	Field       string   `json:"field"       jsonschema:"Relation field name on the entry"`
	DocumentIDs []string `json:"documentIds" jsonschema:"Document IDs of the related entries"`
}

// UploadMediaInput is the input for the upload_media tool.
type UploadMediaInput struct {
	FileName   string `json:"fileName"          jsonschema:"File name including extension, e.g. photo.jpg"`
	DataBase64 string `json:"dataBase64"        jsonschema:"File content, base64-encoded"`
	AltText    string `json:"altText,omitempty" jsonschema:"Alternative text for the file"`
	Caption    string `json:"caption,omitempty" jsonschema:"Caption for the file"`
}

// ListMediaInput is the input for the list_media tool.
type ListMediaInput struct {
	Page     int `json:"page,omitempty"     jsonschema:"Page number, 1-based (default: 1)"`
	PageSize int `json:"pageSize,omitempty" jsonschema:"Files per page (default: 25)"`
}

// ListMediaOutput is the output from the list_media tool.
type ListMediaOutput struct {
	Pagination PaginationInfo  `json:"pagination"`
	Files      []MediaFileInfo `json:"files"`
}

// DeleteMediaInput is the input for the delete_media tool.
type DeleteMediaInput struct {
	ID int `json:"id" jsonschema:"Numeric ID of the media file to delete"`
}

// DeleteMediaOutput is the output from the delete_media tool.
type DeleteMediaOutput struct {
	Deleted bool `json:"deleted"`
	ID      int  `json:"id"`
}

// ListComponentsOutput is the output from the list_components tool.
type ListComponentsOutput struct {
	Total      int              `json:"total"`
	Components []ComponentBrief `json:"components"`
}

// GetComponentSchemaInput is the input for the get_component_schema tool.
type GetComponentSchemaInput struct {
	UID string `json:"uid" jsonschema:"Component UID, e.g. shared.seo"`
}

// CreateContentTypeInput is the input for the create_content_type tool.
type CreateContentTypeInput struct {
	DisplayName     string         `json:"displayName"               jsonschema:"Human-readable name, e.g. Article"`
	SingularName    string         `json:"singularName,omitempty"    jsonschema:"Singular API id (default: slug of displayName)"`
	PluralName      string         `json:"pluralName,omitempty"      jsonschema:"Plural API id (default: singular + s)"`
	Kind            string         `json:"kind,omitempty"            jsonschema:"collectionType or singleType (default: collectionType)"`
	Description     string         `json:"description,omitempty"     jsonschema:"Description of the content type"`
	DraftAndPublish *bool          `json:"draftAndPublish,omitempty" jsonschema:"Enable draft/publish workflow (default: true)"`
	Attributes      map[string]any `json:"attributes"                jsonschema:"Attribute definitions, e.g. {\"title\": {\"type\": \"string\"}}"`
}

// ContentTypeChangeOutput is the output from the create_content_type,
// update_content_type, and delete_content_type tools.
type ContentTypeChangeOutput struct {
	UID    string `json:"uid,omitempty"`
	Result any    `json:"result,omitempty"`
	Note   string `json:"note,omitempty"`
}

// UpdateContentTypeInput is the input for the update_content_type tool.
type UpdateContentTypeInput struct {
	UID             string         `json:"uid"                       jsonschema:"Content type UID to update"`
	DisplayName     string         `json:"displayName,omitempty"     jsonschema:"New display name (default: keep current)"`
	Description     string         `json:"description,omitempty"     jsonschema:"New description (default: keep current)"`
	DraftAndPublish *bool          `json:"draftAndPublish,omitempty" jsonschema:"Change draft/publish workflow (default: keep current)"`
	Attributes      map[string]any `json:"attributes,omitempty"      jsonschema:"Full replacement attribute definitions (default: keep current)"`
}

// DeleteContentTypeInput is the input for the delete_content_type tool.
type DeleteContentTypeInput struct {
	UID string `json:"uid" jsonschema:"Content type UID to delete"`
}

// CreateComponentInput is the input for the create_component tool.
type CreateComponentInput struct {
	Category    string         `json:"category"    jsonschema:"Component category used for grouping, e.g. shared"`
	DisplayName string         `json:"displayName" jsonschema:"Human-readable name, e.g. SEO Metadata"`
	Attributes  map[string]any `json:"attributes"  jsonschema:"Attribute definitions, e.g. {\"metaTitle\": {\"type\": \"string\"}}"`
}

// UpdateComponentInput is the input for the update_component tool.
type UpdateComponentInput struct {
	UID        string         `json:"uid"        jsonschema:"Component UID to update, e.g. shared.seo"`
	Attributes map[string]any `json:"attributes" jsonschema:"Full replacement attribute definitions"`
}

// ListLocalesOutput is the output from the list_locales tool.
type ListLocalesOutput struct {
	Total   int          `json:"total"`
	Locales []LocaleInfo `json:"locales"`
}

// CreateLocaleInput is the input for the create_locale tool.
type CreateLocaleInput struct {
	Code      string `json:"code"                jsonschema:"ISO locale code, e.g. fr, pt-BR"`
	Name      string `json:"name,omitempty"      jsonschema:"Display name (default: the code)"`
	IsDefault bool   `json:"isDefault,omitempty" jsonschema:"Make this the default locale (default: false)"`
}

// DeleteLocaleInput is the input for the delete_locale tool.
type DeleteLocaleInput struct {
	ID int `json:"id" jsonschema:"Numeric ID of the locale to delete"`
}

// DeleteLocaleOutput is the output from the delete_locale tool.
type DeleteLocaleOutput struct {
	Deleted bool `json:"deleted"`
	ID      int  `json:"id"`
}

// StrapiRestInput is the input for the strapi_rest tool.
type StrapiRestInput struct {
	Method  string            `json:"method,omitempty"  jsonschema:"HTTP method: GET, POST, PUT, DELETE (default: GET)"`
	Path    string            `json:"path"              jsonschema:"Request path, e.g. /api/articles or /content-manager/collection-types/api::article.article"`
	Surface string            `json:"surface,omitempty" jsonschema:"Which credentials to use: admin, public, or empty to choose automatically"`
	Params  map[string]string `json:"params,omitempty"  jsonschema:"Query string parameters"`
	Body    map[string]any    `json:"body,omitempty"    jsonschema:"JSON request body for POST/PUT"`
}

// StrapiRestOutput is the output from the strapi_rest tool.
type StrapiRestOutput struct {
	Response any `json:"response"`
}
