package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// frontMatter is the metadata block at the top of a content file.
type frontMatter struct {
	Title       string     `yaml:"title,omitempty"`
	Date        string     `yaml:"date,omitempty"`
	Modified    string     `yaml:"modified,omitempty"`
	Excerpt     string     `yaml:"excerpt,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Tags        stringList `yaml:"tags,omitempty"`
	Image       string     `yaml:"image,omitempty"`
	Author      string     `yaml:"author,omitempty"`
	Draft       bool       `yaml:"draft,omitempty"`
	Client      string     `yaml:"client,omitempty"`
	Services    stringList `yaml:"services,omitempty"`
	URL         string     `yaml:"url,omitempty"`
	Featured    bool       `yaml:"featured,omitempty"`
}

// parseDocument splits a file into its metadata and markdown body. Files
// without a metadata block are all body.
func parseDocument(data []byte) (frontMatter, string, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm, yamlFormat)
	if err != nil {
		return frontMatter{}, "", err
	}
	return fm, strings.TrimLeft(string(body), "\r\n"), nil
}

// stringList decodes either a YAML sequence or a comma separated scalar.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = normalizeList(strings.Split(value.Value, ","))
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = normalizeList(items)
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or comma separated string", value.Line)
	}
}

// normalizeList trims values, drops empties and removes case-insensitive
// duplicates keeping the first spelling.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
