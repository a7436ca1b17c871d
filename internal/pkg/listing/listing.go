// Package listing narrows an in-memory collection by free-text search and
// categorical filters, orders it by a named comparator and exposes a growing
// prefix window ("Load More").
package listing

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// All is the filter value that disables a categorical filter.
const All = "all"

// Spec describes how one entity type is searched, filtered and sorted.
type Spec[T any] struct {
	// Search holds the text fields matched case-insensitively by Query.Search.
	Search []func(T) string
	// Filters maps a filter key to the accessor compared for exact equality.
	Filters map[string]func(T) string
	// Sorts maps a sort label such as "Name (A-Z)" to its comparator.
	Sorts map[string]Comparator[T]
}

type Query struct {
	Search  string            `json:"q,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    string            `json:"sort,omitempty"`
	Pages   int               `json:"pages"`
}

type Result[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Visible  int  `json:"visible"`
	Pages    int  `json:"pages"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// Apply filters, sorts and windows items. items is not modified.
func (s Spec[T]) Apply(items []T, q Query, pageSize int) Result[T] {
	filtered := s.Filter(items, q)
	s.Sort(filtered, q.Sort)

	pages := q.Pages
	if pages < 1 {
		pages = 1
	}
	visible := Window(filtered, pageSize, pages)

	return Result[T]{
		Items:    visible,
		Total:    len(filtered),
		Visible:  len(visible),
		Pages:    pages,
		PageSize: pageSize,
		HasMore:  len(visible) < len(filtered),
	}
}

// Filter returns a new slice with the items matching the search text and
// every active categorical filter.
func (s Spec[T]) Filter(items []T, q Query) []T {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))

	type active struct {
		get   func(T) string
		value string
	}
	filters := make([]active, 0, len(q.Filters))
	for key, value := range q.Filters {
		get, ok := s.Filters[key]
		if !ok || isAll(value) {
			continue
		}
		filters = append(filters, active{get: get, value: value})
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !s.matches(item, needle, fold) {
			continue
		}
		keep := true
		for _, f := range filters {
			if f.get(item) != f.value {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

func (s Spec[T]) matches(item T, needle string, fold cases.Caser) bool {
	for _, field := range s.Search {
		if strings.Contains(fold.String(field(item)), needle) {
			return true
		}
	}
	return false
}

// Sort orders items in place by the comparator registered under key.
// Unknown or empty keys leave the order untouched.
func (s Spec[T]) Sort(items []T, key string) {
	cmp, ok := s.Sorts[key]
	if !ok || cmp == nil {
		return
	}
	slices.SortStableFunc(items, cmp)
}

// SortKeys lists the registered sort labels in alphabetical order.
func (s Spec[T]) SortKeys() []string {
	keys := make([]string, 0, len(s.Sorts))
	for k := range s.Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ParseQuery reads q, sort, pages and the configured filter keys from values.
func (s Spec[T]) ParseQuery(values url.Values) Query {
	q := Query{
		Search:  values.Get("q"),
		Sort:    values.Get("sort"),
		Pages:   1,
		Filters: map[string]string{},
	}
	if p, err := strconv.Atoi(values.Get("pages")); err == nil && p > 0 {
		q.Pages = p
	}
	for key := range s.Filters {
		if v := values.Get(key); v != "" {
			q.Filters[key] = v
		}
	}
	return q
}

// Window returns the first pageSize*pages items. A non-positive pageSize
// disables windowing.
func Window[T any](items []T, pageSize, pages int) []T {
	if pageSize <= 0 || pages > len(items)/pageSize {
		return items
	}
	n := pageSize * pages
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// WithSearch changes the search text and resets the window to one page.
func (q Query) WithSearch(text string) Query {
	q.Search = text
	q.Pages = 1
	return q
}

// WithFilter sets one categorical filter and resets the window to one page.
func (q Query) WithFilter(key, value string) Query {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	if isAll(value) {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	q.Filters = filters
	q.Pages = 1
	return q
}

// WithSort changes the ordering; the loaded window is kept.
func (q Query) WithSort(key string) Query {
	q.Sort = key
	return q
}

// NextPage grows the window by one page.
func (q Query) NextPage() Query {
	if q.Pages < 1 {
		q.Pages = 1
	}
	q.Pages++
	return q
}

// Values encodes q for a list endpoint.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	pages := q.Pages
	if pages < 1 {
		pages = 1
	}
	v.Set("pages", strconv.Itoa(pages))
	for k, val := range q.Filters {
		if !isAll(val) {
			v.Set(k, val)
		}
	}
	return v
}

func isAll(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, All)
}
