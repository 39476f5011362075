package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/aellingwood/strapi-mcp/internal/client"
)

// ---------------------------------------------------------------------------
// Error presentation
// ---------------------------------------------------------------------------

func TestDescribeErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "privileged required names the env vars",
			err:  fmt.Errorf("listing components: %w", client.ErrPrivilegedRequired),
			want: "STRAPI_ADMIN_EMAIL",
		},
		{
			name: "missing credentials names the env vars",
			err:  client.ErrAdminCredentialsMissing,
			want: "STRAPI_ADMIN_PASSWORD",
		},
		{
			name: "rate limited suggests waiting",
			err:  fmt.Errorf("%w: gave up after 3 attempts", client.ErrLoginRateLimited),
			want: "wait before retrying",
		},
		{
			name: "login failure points at credentials",
			err:  fmt.Errorf("%w: admin login returned status 400", client.ErrLoginFailed),
			want: "Check STRAPI_ADMIN_EMAIL",
		},
		{
			name: "other errors pass through",
			err:  fmt.Errorf("GET /api/articles: status 500"),
			want: "GET /api/articles: status 500",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeErr(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("describeErr(%v) = %q, want it to contain %q", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Response decoding
// ---------------------------------------------------------------------------

func TestDecodeAny(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{name: "object", raw: `{"a":1}`, want: map[string]any{"a": float64(1)}},
		{name: "array", raw: `[1,2]`, want: []any{float64(1), float64(2)}},
		{name: "empty", raw: "", want: nil},
		{name: "not json passes through as string", raw: "plain text", want: "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAny(json.RawMessage(tt.raw))
			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(tt.want)
			if string(gotJSON) != string(wantJSON) {
				t.Errorf("decodeAny(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeEntries(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"documentId":"d1"}`),
		json.RawMessage(`{"documentId":"d2"}`),
	}
	entries := decodeEntries(raws)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first, ok := entries[0].(map[string]any)
	if !ok {
		t.Fatalf("expected map entry, got %T", entries[0])
	}
	if first["documentId"] != "d1" {
		t.Errorf("documentId = %v, want d1", first["documentId"])
	}
}

// ---------------------------------------------------------------------------
// Input validation (no client needed; validation runs before any request)
// ---------------------------------------------------------------------------

func TestCreateContentTypeRejectsBadKind(t *testing.T) {
	ss := &StrapiServer{}
	result, _, err := ss.handleCreateContentType(context.Background(), nil, CreateContentTypeInput{
		DisplayName: "Article",
		Kind:        "weirdType",
		Attributes:  map[string]any{"title": map[string]any{"type": "string"}},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for invalid kind")
	}
}

func TestDeleteContentTypeRejectsPluginTypes(t *testing.T) {
	ss := &StrapiServer{}
	result, _, err := ss.handleDeleteContentType(context.Background(), nil, DeleteContentTypeInput{
		UID: "plugin::users-permissions.user",
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for plugin type deletion")
	}
}

func TestStrapiRestValidation(t *testing.T) {
	ss := &StrapiServer{}
	tests := []struct {
		name  string
		input StrapiRestInput
	}{
		{name: "missing path", input: StrapiRestInput{Method: "GET"}},
		{name: "relative path", input: StrapiRestInput{Path: "api/articles"}},
		{name: "bad method", input: StrapiRestInput{Method: "PATCH", Path: "/api/articles"}},
		{name: "bad surface", input: StrapiRestInput{Path: "/api/articles", Surface: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := ss.handleStrapiRest(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("unexpected protocol error: %v", err)
			}
			if result == nil || !result.IsError {
				t.Errorf("expected error result for %+v", tt.input)
			}
		})
	}
}

func TestRelationValidation(t *testing.T) {
	ss := &StrapiServer{}

	result, _, err := ss.updateRelation(context.Background(), RelationInput{UID: "api::article.article"}, "connect")
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result when documentId and field are missing")
	}

	result, _, err = ss.updateRelation(context.Background(), RelationInput{
		UID: "api::article.article", DocumentID: "d1", Field: "tags",
	}, "disconnect")
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result for disconnect with no documentIds")
	}
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func TestToContentTypeBrief(t *testing.T) {
	ct := client.ContentType{
		UID:    "api::article.article",
		Plugin: "",
		Schema: client.ContentTypeSchema{
			DisplayName:     "Article",
			SingularName:    "article",
			PluralName:      "articles",
			Kind:            "collectionType",
			DraftAndPublish: true,
		},
	}
	got := toContentTypeBrief(ct)
	if got.UID != "api::article.article" || got.DisplayName != "Article" {
		t.Errorf("unexpected brief: %+v", got)
	}
	if got.PluralName != "articles" || !got.DraftAndPublish {
		t.Errorf("schema fields not carried over: %+v", got)
	}
}

func TestToMediaFileInfo(t *testing.T) {
	f := client.MediaFile{ID: 7, Name: "photo.jpg", Mime: "image/jpeg", Size: 42.5, URL: "/uploads/photo.jpg", Alt: "A photo", Ext: ".jpg"}
	got := toMediaFileInfo(f)
	if got.ID != 7 || got.SizeKB != 42.5 || got.AltText != "A photo" || got.Extension != ".jpg" {
		t.Errorf("unexpected media info: %+v", got)
	}
}
