package content

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryLabel turns a category directory name into a display label,
// e.g. "case-studies" becomes "Case Studies".
func CategoryLabel(category string) string {
	label := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(category))
	return cases.Title(language.English).String(label)
}
