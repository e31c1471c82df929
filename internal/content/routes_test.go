package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
)

func record(category, slug string, day int, tags ...string) models.Record {
	return models.Record{
		Kind:     models.KindPost,
		Category: category,
		Slug:     slug,
		Title:    TitleFromSlug(slug),
		Date:     time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Tags:     tags,
	}
}

func TestRoutes(t *testing.T) {
	records := []models.Record{record("design", "grids", 2), record("news", "launch", 1)}
	records[1].Kind = models.KindProject

	routes := Routes(records)
	require.Len(t, routes, 2)
	assert.Equal(t, Route{Category: "design", Slug: "grids", Path: "/blog/design/grids"}, routes[0])
	assert.Equal(t, Route{Category: "news", Slug: "launch", Path: "/work/news/launch"}, routes[1])
}

func TestResolveSlugPicksNewest(t *testing.T) {
	records := []models.Record{
		record("news", "recap", 1),
		record("events", "recap", 9),
		record("design", "grids", 5),
	}
	SortRecords(records)

	got, ok := ResolveSlug(records, "recap")
	require.True(t, ok)
	assert.Equal(t, "events", got.Category)

	_, ok = ResolveSlug(records, "missing")
	assert.False(t, ok)
	_, ok = ResolveSlug(records, "  ")
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	records := []models.Record{record("design", "grids", 2)}
	_, ok := Find(records, "design", "grids")
	assert.True(t, ok)
	_, ok = Find(records, "news", "grids")
	assert.False(t, ok)
}

func TestRelated(t *testing.T) {
	target := record("design", "grids", 10, "layout", "css")
	records := []models.Record{
		target,
		record("design", "colour", 9),                    // category only: 1
		record("news", "css-tricks", 8, "CSS"),           // one tag: 2
		record("design", "flexbox", 7, "layout"),         // tag + category: 3
		record("news", "unrelated", 6, "hiring"),         // 0
		record("news", "layout-css", 5, "layout", "css"), // two tags: 4
	}

	related := Related(records, target, 3)
	require.Len(t, related, 3)
	assert.Equal(t, "layout-css", related[0].Slug)
	assert.Equal(t, "flexbox", related[1].Slug)
	assert.Equal(t, "css-tricks", related[2].Slug)

	assert.Len(t, Related(records, target, 10), 4)
	assert.Empty(t, Related(records, target, 0))
}
