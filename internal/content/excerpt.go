package content

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
)

var (
	fencedCodePattern = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	imagePattern      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	headingPattern    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	quotePattern      = regexp.MustCompile(`(?m)^>\s*(\[![A-Za-z]+\]\s*)?`)
	listPattern       = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
	rulePattern       = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	emphasisPattern   = regexp.MustCompile(`(\*\*|__|\*|~~)`)
	spacePattern      = regexp.MustCompile(`\s+`)
	wordPattern       = regexp.MustCompile(`\S+`)
)

// StripMarkdown reduces a markdown body to a single line of plain text.
func StripMarkdown(body string) string {
	text := fencedCodePattern.ReplaceAllString(body, " ")
	text = imagePattern.ReplaceAllString(text, " ")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = inlineCodePattern.ReplaceAllString(text, "$1")
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = headingPattern.ReplaceAllString(text, "")
	text = quotePattern.ReplaceAllString(text, "")
	text = rulePattern.ReplaceAllString(text, " ")
	text = listPattern.ReplaceAllString(text, "")
	text = emphasisPattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Excerpt returns the plain text of body cut at a word boundary so that it
// holds at most limit runes before the trailing ellipsis.
func Excerpt(body string, limit int) string {
	if limit <= 0 {
		limit = models.DefaultExcerptLength
	}
	text := StripMarkdown(body)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:limit])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:-") + "..."
}

// ReadingMinutes estimates reading time, never less than one minute.
func ReadingMinutes(body string) int {
	words := len(wordPattern.FindAllStringIndex(StripMarkdown(body), -1))
	minutes := int(math.Ceil(float64(words) / models.WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
