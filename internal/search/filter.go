package search

import (
	"net/url"
	"slices"
	"sort"
	"strings"

	"inkwell/internal/models"
)

// Sort names a list ordering.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortTitle  Sort = "title"
)

// ParseSort falls back to SortNewest for unknown values.
func ParseSort(value string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(value))) {
	case SortOldest:
		return SortOldest
	case SortTitle:
		return SortTitle
	default:
		return SortNewest
	}
}

// Filter is the selection state of a list view: one category, any number of
// tags and free search text.
type Filter struct {
	Category string
	Tags     []string
	Query    string
	Sort     Sort
}

// FromQuery reads category, tag (repeated or comma separated), q and sort.
func FromQuery(values url.Values) Filter {
	f := Filter{
		Category: strings.TrimSpace(values.Get("category")),
		Query:    strings.TrimSpace(values.Get("q")),
		Sort:     ParseSort(values.Get("sort")),
	}
	for _, raw := range values["tag"] {
		for _, tag := range strings.Split(raw, ",") {
			f = f.withTag(tag)
		}
	}
	return f
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.Category == "" && len(f.Tags) == 0 && strings.TrimSpace(f.Query) == ""
}

// Matches combines the exact category match, the tag subset match and the
// case-insensitive text search.
func (f Filter) Matches(record models.Record) bool {
	if f.Category != "" && record.Category != f.Category {
		return false
	}
	for _, tag := range f.Tags {
		if !hasTag(record.Tags, tag) {
			return false
		}
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(record.Title), query) ||
		strings.Contains(strings.ToLower(record.Excerpt), query) ||
		strings.Contains(strings.ToLower(record.Category), query) {
		return true
	}
	for _, tag := range record.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Apply returns the matching records in the filter's order. The input slice
// is left untouched.
func Apply(records []models.Record, f Filter) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, record := range records {
		if f.Matches(record) {
			out = append(out, record)
		}
	}
	sortRecords(out, f.Sort)
	return out
}

func sortRecords(records []models.Record, order Sort) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch order {
		case SortOldest:
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
		case SortTitle:
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at != bt {
				return at < bt
			}
		default:
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Slug < b.Slug
	})
}

// HasTag reports whether tag is part of the selection.
func (f Filter) HasTag(tag string) bool {
	return hasTag(f.Tags, tag)
}

// Toggle adds tag to the selection or removes it when already selected.
func (f Filter) Toggle(tag string) Filter {
	if !f.HasTag(tag) {
		return f.withTag(tag)
	}
	out := f
	out.Tags = slices.DeleteFunc(slices.Clone(f.Tags), func(t string) bool {
		return strings.EqualFold(t, tag)
	})
	return out
}

// WithCategory selects category; an empty value clears the selection.
func (f Filter) WithCategory(category string) Filter {
	out := f
	out.Category = category
	return out
}

// Values encodes the filter so FromQuery reads it back.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	for _, tag := range f.Tags {
		values.Add("tag", tag)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		values.Set("q", q)
	}
	if f.Sort != "" && f.Sort != SortNewest {
		values.Set("sort", string(f.Sort))
	}
	return values
}

// Encode returns the query string for links, including the leading "?", or
// "" for the empty filter.
func (f Filter) Encode() string {
	encoded := f.Values().Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

func (f Filter) withTag(tag string) Filter {
	tag = strings.TrimSpace(tag)
	if tag == "" || f.HasTag(tag) {
		return f
	}
	out := f
	out.Tags = append(slices.Clone(f.Tags), tag)
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
