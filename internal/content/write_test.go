package content

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
)

func TestWriteThenLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	modified := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	want := models.Record{
		Kind:     models.KindProject,
		Category: "branding",
		Slug:     "north-star",
		Title:    "North Star: a rebrand",
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Modified: &modified,
		Excerpt:  "A full identity refresh.",
		Tags:     []string{"identity", "print"},
		Image:    "/images/north-star.jpg",
		Author:   "Studio Team",
		Client:   "North Star Coffee",
		Services: []string{"Strategy", "Identity"},
		URL:      "https://northstar.example",
		Featured: true,
		Body:     "## Brief\n\nThe client wanted warmth.\n",
	}

	path, err := Write(root, want)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "branding/north-star.md"))

	loader := newTestLoader(root)
	loader.Kind = models.KindProject
	records, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, want.Kind, got.Kind)
	assert.Equal(t, want.Category, got.Category)
	assert.Equal(t, want.Slug, got.Slug)
	assert.Equal(t, want.Title, got.Title)
	assert.True(t, want.Date.Equal(got.Date), "date %s != %s", want.Date, got.Date)
	require.NotNil(t, got.Modified)
	assert.True(t, want.Modified.Equal(*got.Modified))
	assert.Equal(t, want.Excerpt, got.Excerpt)
	assert.Equal(t, want.Tags, got.Tags)
	assert.Equal(t, want.Image, got.Image)
	assert.Equal(t, want.Author, got.Author)
	assert.Equal(t, want.Client, got.Client)
	assert.Equal(t, want.Services, got.Services)
	assert.Equal(t, want.URL, got.URL)
	assert.Equal(t, want.Featured, got.Featured)
	assert.Equal(t, want.Body, got.Body)
}

func TestWriteThenLoadKeepsSubSecondDates(t *testing.T) {
	root := t.TempDir()
	date := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	modified := time.Date(2024, 3, 2, 8, 15, 30, 500000000, time.FixedZone("CET", 3600))
	_, err := Write(root, models.Record{
		Category: "notes",
		Slug:     "precise",
		Title:    "Precise",
		Date:     date,
		Modified: &modified,
	})
	require.NoError(t, err)

	records, err := newTestLoader(root).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, date.Equal(records[0].Date), "wrote %s, loaded %s", date, records[0].Date)
	require.NotNil(t, records[0].Modified)
	assert.True(t, modified.Equal(*records[0].Modified), "wrote %s, loaded %s", modified, *records[0].Modified)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-01", formatDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-01T10:00:00.25Z", formatDate(time.Date(2024, 3, 1, 10, 0, 0, 250000000, time.UTC)))
	assert.Equal(t, "2024-03-01T00:00:00+02:00", formatDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("EET", 7200))))
}

func TestWriteTrimsTextFields(t *testing.T) {
	root := t.TempDir()
	want := models.Record{
		Category: "notes",
		Slug:     "padded",
		Title:    "  Padded Title ",
		Excerpt:  " Short summary.\n",
		Author:   "\tAda ",
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	path, err := Write(root, want)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Padded Title\n")

	records, err := newTestLoader(root).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Padded Title", records[0].Title)
	assert.Equal(t, "Short summary.", records[0].Excerpt)
	assert.Equal(t, "Ada", records[0].Author)
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	root := t.TempDir()
	record := models.Record{Category: "news", Slug: "hello", Title: "Hello"}

	_, err := Write(root, record)
	require.NoError(t, err)

	_, err = Write(root, record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWriteRejectsBadPathSegments(t *testing.T) {
	root := t.TempDir()
	for _, record := range []models.Record{
		{Category: "", Slug: "a"},
		{Category: "news", Slug: "../escape"},
		{Category: "..", Slug: "a"},
		{Category: ".hidden", Slug: "a"},
	} {
		_, err := Write(root, record)
		assert.Error(t, err, "category=%q slug=%q", record.Category, record.Slug)
	}
}
