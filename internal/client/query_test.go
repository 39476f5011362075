package client

import (
	"encoding/json"
	"testing"
)

func TestPublicValues(t *testing.T) {
	opts := QueryOptions{
		Filters: map[string]any{
			"title":  map[string]any{"$contains": "go"},
			"rating": map[string]any{"$gte": 4},
		},
		Sort:     []string{"publishedAt:desc", "title:asc"},
		Page:     2,
		PageSize: 10,
		Populate: []string{"author", "cover"},
		Fields:   []string{"title", "slug"},
		Locale:   "en",
		Status:   "published",
	}

	v := opts.publicValues()

	want := map[string]string{
		"filters[title][$contains]": "go",
		"filters[rating][$gte]":     "4",
		"sort[0]":                   "publishedAt:desc",
		"sort[1]":                   "title:asc",
		"pagination[page]":          "2",
		"pagination[pageSize]":      "10",
		"populate[0]":               "author",
		"populate[1]":               "cover",
		"fields[0]":                 "title",
		"fields[1]":                 "slug",
		"locale":                    "en",
		"status":                    "published",
	}
	for key, val := range want {
		if got := v.Get(key); got != val {
			t.Errorf("%s: got %q, want %q", key, got, val)
		}
	}
}

func TestAdminValues(t *testing.T) {
	opts := QueryOptions{
		Sort:     []string{"title:asc", "createdAt:desc"},
		Page:     3,
		PageSize: 50,
	}
	v := opts.adminValues()

	if got := v.Get("sort"); got != "title:asc,createdAt:desc" {
		t.Errorf("sort: got %q", got)
	}
	if got := v.Get("page"); got != "3" {
		t.Errorf("page: got %q, want 3", got)
	}
	if got := v.Get("pageSize"); got != "50" {
		t.Errorf("pageSize: got %q, want 50", got)
	}
}

func TestEncodeFiltersNested(t *testing.T) {
	// $or with subclauses, as produced from decoded tool JSON.
	var filters map[string]any
	raw := `{"$or":[{"title":{"$eq":"a"}},{"draft":{"$eq":true}}]}`
	if err := json.Unmarshal([]byte(raw), &filters); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	opts := QueryOptions{Filters: filters}
	v := opts.publicValues()

	if got := v.Get("filters[$or][0][title][$eq]"); got != "a" {
		t.Errorf("$or[0]: got %q, want %q", got, "a")
	}
	if got := v.Get("filters[$or][1][draft][$eq]"); got != "true" {
		t.Errorf("$or[1]: got %q, want %q", got, "true")
	}
}

func TestEncodeListWildcard(t *testing.T) {
	opts := QueryOptions{Populate: []string{"*"}}
	v := opts.publicValues()
	if got := v.Get("populate"); got != "*" {
		t.Errorf("populate: got %q, want *", got)
	}
}

func TestParseEntryList(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLen   int
		wantTotal int
	}{
		{
			"content-manager shape",
			`{"results":[{"id":1},{"id":2}],"pagination":{"page":1,"pageSize":10,"pageCount":1,"total":2}}`,
			2, 2,
		},
		{
			"public shape",
			`{"data":[{"id":3}],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":1}}}`,
			1, 1,
		},
		{
			"empty public shape",
			`{"data":[],"meta":{"pagination":{"total":0}}}`,
			0, 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list, err := parseEntryList(json.RawMessage(tc.raw))
			if err != nil {
				t.Fatalf("parseEntryList: %v", err)
			}
			if len(list.Entries) != tc.wantLen {
				t.Errorf("entries: got %d, want %d", len(list.Entries), tc.wantLen)
			}
			if list.Pagination.Total != tc.wantTotal {
				t.Errorf("total: got %d, want %d", list.Pagination.Total, tc.wantTotal)
			}
		})
	}
}

func TestUnwrapData(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"public envelope", `{"data":{"id":1}}`, `{"id":1}`},
		{"admin bare entity", `{"id":1,"title":"x"}`, `{"id":1,"title":"x"}`},
		{"not json object", `[1,2]`, `[1,2]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := string(unwrapData(json.RawMessage(tc.raw)))
			if got != tc.want {
				t.Errorf("unwrapData: got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPluralFor(t *testing.T) {
	idx := newTypeIndex()
	idx.store([]ContentType{{
		UID:    "api::person.person",
		Schema: ContentTypeSchema{PluralName: "people"},
	}})

	tests := []struct {
		uid  string
		want string
	}{
		{"api::person.person", "people"}, // cached schema wins
		{"api::article.article", "articles"},
		{"api::category.category", "categories"},
		{"api::box.box", "boxes"},
		{"api::glass.glass", "glasses"},
	}
	for _, tc := range tests {
		t.Run(tc.uid, func(t *testing.T) {
			if got := idx.pluralFor(tc.uid); got != tc.want {
				t.Errorf("pluralFor(%q): got %q, want %q", tc.uid, got, tc.want)
			}
		})
	}
}
