package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryOptions are the list-query parameters shared by both surfaces:
// filtering, sorting, pagination, population, field selection, locale, and
// publication status.
type QueryOptions struct {
	Filters  map[string]any // Strapi filter object, e.g. {"title": {"$contains": "go"}}
	Sort     []string       // e.g. ["publishedAt:desc", "title:asc"]
	Page     int
	PageSize int
	Populate []string // relation/component names, or ["*"]
	Fields   []string
	Locale   string
	Status   string // "draft" or "published"
}

// publicValues encodes opts using the public REST API's bracketed
// convention: filters[title][$contains]=go, pagination[page]=2, and so on.
func (o QueryOptions) publicValues() url.Values {
	v := url.Values{}
	encodeFilters(v, "filters", o.Filters)
	for i, s := range o.Sort {
		v.Set(fmt.Sprintf("sort[%d]", i), s)
	}
	if o.Page > 0 {
		v.Set("pagination[page]", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		v.Set("pagination[pageSize]", strconv.Itoa(o.PageSize))
	}
	encodeList(v, "populate", o.Populate)
	encodeList(v, "fields", o.Fields)
	if o.Locale != "" {
		v.Set("locale", o.Locale)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	return v
}

// adminValues encodes opts for the content-manager surface, which takes
// page/pageSize/sort as flat parameters but shares the bracketed filter
// syntax with the public API.
func (o QueryOptions) adminValues() url.Values {
	v := url.Values{}
	encodeFilters(v, "filters", o.Filters)
	if len(o.Sort) > 0 {
		v.Set("sort", strings.Join(o.Sort, ","))
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(o.PageSize))
	}
	encodeList(v, "populate", o.Populate)
	if o.Locale != "" {
		v.Set("locale", o.Locale)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	return v
}

// encodeFilters flattens a nested filter object into bracketed query keys.
// Slices become indexed keys so $in/$or style filters round-trip.
func encodeFilters(v url.Values, prefix string, node any) {
	switch val := node.(type) {
	case nil:
		return
	case map[string]any:
		for key, child := range val {
			encodeFilters(v, prefix+"["+key+"]", child)
		}
	case []any:
		for i, child := range val {
			encodeFilters(v, fmt.Sprintf("%s[%d]", prefix, i), child)
		}
	case string:
		v.Set(prefix, val)
	case bool:
		v.Set(prefix, strconv.FormatBool(val))
	case float64:
		v.Set(prefix, strconv.FormatFloat(val, 'f', -1, 64))
	case int:
		v.Set(prefix, strconv.Itoa(val))
	default:
		v.Set(prefix, fmt.Sprintf("%v", val))
	}
}

// encodeList writes a string slice as indexed bracket keys. A single "*"
// stays flat, matching populate=*.
func encodeList(v url.Values, key string, items []string) {
	if len(items) == 1 && items[0] == "*" {
		v.Set(key, "*")
		return
	}
	for i, item := range items {
		v.Set(fmt.Sprintf("%s[%d]", key, i), item)
	}
}
