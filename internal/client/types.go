package client

import (
	"encoding/json"
	"strings"
	"sync"
)

// ContentType is one content type as reported by the content-type-builder
// API. Plugin types (admin users, upload files, i18n locale) come back
// alongside the api:: types; callers filter on UID prefix when they only
// want user-defined types.
type ContentType struct {
	UID    string            `json:"uid"`
	Plugin string            `json:"plugin,omitempty"`
	APIID  string            `json:"apiID,omitempty"`
	Schema ContentTypeSchema `json:"schema"`
}

// ContentTypeSchema is the schema half of a content type or component.
type ContentTypeSchema struct {
	DisplayName     string         `json:"displayName"`
	SingularName    string         `json:"singularName,omitempty"`
	PluralName      string         `json:"pluralName,omitempty"`
	Description     string         `json:"description,omitempty"`
	Kind            string         `json:"kind,omitempty"` // collectionType or singleType
	DraftAndPublish bool           `json:"draftAndPublish,omitempty"`
	Attributes      map[string]any `json:"attributes"`
}

// Component is a reusable attribute group from the content-type-builder.
type Component struct {
	UID      string            `json:"uid"`
	Category string            `json:"category"`
	APIID    string            `json:"apiId,omitempty"`
	Schema   ContentTypeSchema `json:"schema"`
}

// EntryList is a page of entries, normalized across the two surfaces: the
// content-manager returns {results, pagination}, the public API returns
// {data, meta.pagination}. Entries stay raw JSON — their shape belongs to
// the user's content model, not to this client.
type EntryList struct {
	Entries    []json.RawMessage `json:"entries"`
	Pagination Pagination        `json:"pagination"`
}

// Pagination describes the page window of an EntryList.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// MediaFile is one uploaded file as returned by the upload plugin.
type MediaFile struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Hash string  `json:"hash,omitempty"`
	Ext  string  `json:"ext,omitempty"`
	Mime string  `json:"mime"`
	Size float64 `json:"size"`
	URL  string  `json:"url"`
	Alt  string  `json:"alternativeText,omitempty"`
}

// Locale is one configured i18n locale.
type Locale struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// typeIndex caches content-type metadata so the public-surface fallback can
// map a UID like api::article.article to its plural API id without an extra
// round trip per call.
type typeIndex struct {
	mu    sync.RWMutex
	types map[string]ContentType
}

func newTypeIndex() *typeIndex {
	return &typeIndex{types: make(map[string]ContentType)}
}

func (idx *typeIndex) store(types []ContentType) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, ct := range types {
		idx.types[ct.UID] = ct
	}
}

func (idx *typeIndex) get(uid string) (ContentType, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ct, ok := idx.types[uid]
	return ct, ok
}

// pluralFor resolves the public API path segment for a content type UID.
// The cached schema wins; otherwise fall back to naive pluralization of the
// UID's model name, which matches Strapi's default for regular nouns.
func (idx *typeIndex) pluralFor(uid string) string {
	if ct, ok := idx.get(uid); ok && ct.Schema.PluralName != "" {
		return ct.Schema.PluralName
	}
	name := uid
	if i := strings.LastIndex(uid, "."); i >= 0 {
		name = uid[i+1:]
	}
	switch {
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"), strings.HasSuffix(name, "ch"), strings.HasSuffix(name, "sh"):
		return name + "es"
	case strings.HasSuffix(name, "y") && len(name) > 1 && !strings.ContainsRune("aeiou", rune(name[len(name)-2])):
		return name[:len(name)-1] + "ies"
	default:
		return name + "s"
	}
}
