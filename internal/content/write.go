package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"inkwell/internal/models"
)

// Write stores a record as <root>/<category>/<slug>.md. Existing files are
// never overwritten.
func Write(root string, record models.Record) (string, error) {
	if err := validatePathSegment("category", record.Category); err != nil {
		return "", err
	}
	if err := validatePathSegment("slug", record.Slug); err != nil {
		return "", err
	}

	dir := filepath.Join(root, record.Category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	data, err := encodeDocument(record)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, record.Slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%s already exists", path)
		}
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

// encodeDocument trims text fields the same way the loader does, so a
// written record loads back unchanged.
func encodeDocument(record models.Record) ([]byte, error) {
	fm := frontMatter{
		Title:    strings.TrimSpace(record.Title),
		Excerpt:  strings.TrimSpace(record.Excerpt),
		Tags:     stringList(record.Tags),
		Image:    strings.TrimSpace(record.Image),
		Author:   strings.TrimSpace(record.Author),
		Draft:    record.Draft,
		Client:   strings.TrimSpace(record.Client),
		Services: stringList(record.Services),
		URL:      strings.TrimSpace(record.URL),
		Featured: record.Featured,
	}
	if !record.Date.IsZero() {
		fm.Date = formatDate(record.Date)
	}
	if record.Modified != nil {
		fm.Modified = formatDate(*record.Modified)
	}

	meta, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	buf.WriteString(record.Body)
	if record.Body != "" && !strings.HasSuffix(record.Body, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

func validatePathSegment(name, value string) error {
	switch {
	case strings.TrimSpace(value) == "":
		return fmt.Errorf("%s is required", name)
	case value == "." || value == "..":
		return fmt.Errorf("invalid %s %q", name, value)
	case strings.ContainsAny(value, `/\`):
		return fmt.Errorf("%s %q must not contain path separators", name, value)
	case strings.HasPrefix(value, "."):
		return fmt.Errorf("%s %q must not start with a dot", name, value)
	}
	return nil
}
