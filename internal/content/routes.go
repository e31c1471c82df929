package content

import (
	"sort"
	"strings"

	"inkwell/internal/models"
)

// Route is the category and slug pair a detail page is pre-rendered for.
type Route struct {
	Category string `json:"category"`
	Slug     string `json:"slug"`
	Path     string `json:"path"`
}

// Routes returns one route per record, in record order.
func Routes(records []models.Record) []Route {
	out := make([]Route, 0, len(records))
	for _, record := range records {
		out = append(out, Route{
			Category: record.Category,
			Slug:     record.Slug,
			Path:     record.Path(),
		})
	}
	return out
}

// Find returns the record with the given category and slug.
func Find(records []models.Record, category, slug string) (models.Record, bool) {
	for _, record := range records {
		if record.Category == category && record.Slug == slug {
			return record, true
		}
	}
	return models.Record{}, false
}

// ResolveSlug finds the newest record with slug in any category. Records
// must be sorted with SortRecords.
func ResolveSlug(records []models.Record, slug string) (models.Record, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return models.Record{}, false
	}
	for _, record := range records {
		if record.Slug == slug {
			return record, true
		}
	}
	return models.Record{}, false
}

// Related picks up to limit records sharing the target's category or at
// least one tag. Shared tags weigh twice as much as a shared category.
func Related(records []models.Record, target models.Record, limit int) []models.Record {
	if limit <= 0 {
		return nil
	}

	targetTags := make(map[string]struct{}, len(target.Tags))
	for _, tag := range target.Tags {
		targetTags[strings.ToLower(tag)] = struct{}{}
	}

	type scored struct {
		record models.Record
		score  int
	}
	candidates := []scored{}
	for _, record := range records {
		if record.Category == target.Category && record.Slug == target.Slug {
			continue
		}
		score := 0
		for _, tag := range record.Tags {
			if _, ok := targetTags[strings.ToLower(tag)]; ok {
				score += 2
			}
		}
		if record.Category == target.Category {
			score++
		}
		if score > 0 {
			candidates = append(candidates, scored{record: record, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].record.Date.After(candidates[j].record.Date)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Record, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.record)
	}
	return out
}
