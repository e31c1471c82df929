package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"inkwell/internal/models"
)

var markdownExtensions = map[string]struct{}{
	".md":       {},
	".markdown": {},
}

// Loader reads one content tree laid out as <Root>/<category>/<slug>.md.
type Loader struct {
	Root          string
	Kind          models.Kind
	History       History
	IncludeDrafts bool
	ExcerptLength int
	Logger        *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// OnSkip is called for every file left out of the result because of an error.
	OnSkip func(path string, err error)
}

// Load returns every record in the tree, newest first. A missing root is an
// error; a bad individual file is logged and skipped.
func (l *Loader) Load(ctx context.Context) ([]models.Record, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("content root %s does not exist", l.Root)
		}
		return nil, fmt.Errorf("stat content root %s: %w", l.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", l.Root)
	}

	categories, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("read content root %s: %w", l.Root, err)
	}

	records := []models.Record{}
	seen := map[string]string{}
	for _, category := range categories {
		if !category.IsDir() || strings.HasPrefix(category.Name(), ".") {
			continue
		}
		dir := filepath.Join(l.Root, category.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			l.skip(dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !isMarkdownFile(entry.Name()) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			path := filepath.Join(dir, entry.Name())
			record, err := l.loadFile(ctx, category.Name(), path)
			if err != nil {
				l.skip(path, err)
				continue
			}
			if previous, dup := seen[record.Key()]; dup {
				l.skip(path, fmt.Errorf("duplicate of %s", previous))
				continue
			}
			if record.Draft && !l.IncludeDrafts {
				l.log().Debug("skipping draft", "path", path)
				continue
			}
			seen[record.Key()] = path
			records = append(records, record)
		}
	}

	SortRecords(records)
	l.log().Debug("content loaded", "root", l.Root, "kind", l.Kind, "records", len(records))
	return records, nil
}

func (l *Loader) loadFile(ctx context.Context, category, path string) (models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Record{}, err
	}
	fm, body, err := parseDocument(data)
	if err != nil {
		return models.Record{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	name := filepath.Base(path)
	slug := strings.TrimSuffix(name, filepath.Ext(name))
	record := models.Record{
		Kind:           l.Kind,
		Category:       category,
		Slug:           slug,
		Title:          strings.TrimSpace(fm.Title),
		Excerpt:        strings.TrimSpace(fm.Excerpt),
		Tags:           []string(fm.Tags),
		Image:          strings.TrimSpace(fm.Image),
		Author:         strings.TrimSpace(fm.Author),
		Draft:          fm.Draft,
		Client:         strings.TrimSpace(fm.Client),
		Services:       []string(fm.Services),
		URL:            strings.TrimSpace(fm.URL),
		Featured:       fm.Featured,
		ReadingMinutes: ReadingMinutes(body),
		Body:           body,
		SourcePath:     path,
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}
	if record.Title == "" {
		record.Title = TitleFromSlug(slug)
	}
	if record.Excerpt == "" {
		record.Excerpt = strings.TrimSpace(fm.Description)
	}
	if record.Excerpt == "" {
		record.Excerpt = Excerpt(body, l.ExcerptLength)
	}

	history := l.lazyHistory(ctx, path)

	rawDate := strings.TrimSpace(fm.Date)
	switch {
	case rawDate == "":
		if h, ok := history(); ok && !h.Created.IsZero() {
			record.Date = h.Created
		} else {
			record.Date = startOfDay(l.now())
		}
	default:
		parsed, err := parseDate(rawDate)
		if err != nil {
			l.log().Warn("invalid date, using today", "path", path, "date", rawDate)
			parsed = startOfDay(l.now())
		}
		record.Date = parsed
	}

	if rawModified := strings.TrimSpace(fm.Modified); rawModified != "" {
		parsed, err := parseDate(rawModified)
		if err != nil {
			l.log().Warn("invalid modified date ignored", "path", path, "modified", rawModified)
		} else {
			record.Modified = &parsed
		}
	} else if h, ok := history(); ok && h.Updated.After(record.Date) {
		updated := h.Updated
		record.Modified = &updated
	}

	if record.Author == "" {
		if h, ok := history(); ok {
			record.Author = h.Author
		}
	}

	return record, nil
}

// lazyHistory defers the version control lookup until a fallback needs it.
func (l *Loader) lazyHistory(ctx context.Context, path string) func() (FileHistory, bool) {
	var (
		done    bool
		history FileHistory
		ok      bool
	)
	return func() (FileHistory, bool) {
		if l.History == nil {
			return FileHistory{}, false
		}
		if !done {
			history, ok = l.History.Lookup(ctx, path)
			done = true
		}
		return history, ok
	}
}

func (l *Loader) skip(path string, err error) {
	l.log().Warn("skipping content file", "path", path, "error", err)
	if l.OnSkip != nil {
		l.OnSkip(path, err)
	}
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Loader) log() *slog.Logger {
	if l != nil && l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func isMarkdownFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	_, ok := markdownExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// TitleFromSlug is the title used when a file does not declare one.
func TitleFromSlug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// SortRecords orders records newest first, then by category and slug.
func SortRecords(records []models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Slug < b.Slug
	})
}
