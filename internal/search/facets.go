package search

import (
	"sort"
	"strings"

	"inkwell/internal/content"
	"inkwell/internal/models"
)

// Facet is one selectable category or tag with the number of records
// carrying it.
type Facet struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Categories lists every category in records, alphabetically.
func Categories(records []models.Record) []Facet {
	counts := map[string]int{}
	for _, record := range records {
		counts[record.Category]++
	}
	out := make([]Facet, 0, len(counts))
	for value, count := range counts {
		out = append(out, Facet{Value: value, Label: content.CategoryLabel(value), Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Tags lists every tag in records, most used first. Tags differing only in
// case are merged under the first spelling seen.
func Tags(records []models.Record) []Facet {
	index := map[string]int{}
	out := []Facet{}
	for _, record := range records {
		for _, tag := range record.Tags {
			key := strings.ToLower(tag)
			if i, ok := index[key]; ok {
				out[i].Count++
				continue
			}
			index[key] = len(out)
			out = append(out, Facet{Value: tag, Label: tag, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Value) < strings.ToLower(out[j].Value)
	})
	return out
}
