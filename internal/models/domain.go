package models

import (
	"fmt"
	"strings"
)

// Kind identifies which content tree a record was loaded from.
type Kind string

const (
	KindPost    Kind = "post"
	KindProject Kind = "project"
)

// Theme is the colour scheme a page is rendered with.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	DefaultExcerptLength = 160
	DefaultRelatedLimit  = 3
	WordsPerMinute       = 200
)

var kindAliases = map[string]Kind{
	"post":     KindPost,
	"posts":    KindPost,
	"blog":     KindPost,
	"project":  KindProject,
	"projects": KindProject,
	"work":     KindProject,
}

var kindPathPrefixes = map[Kind]string{
	KindPost:    "/blog/",
	KindProject: "/work/",
}

// ParseKind accepts the singular, plural and route spellings of a kind.
func ParseKind(raw string) (Kind, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", fmt.Errorf("kind is required")
	}
	kind, ok := kindAliases[value]
	if !ok {
		return "", fmt.Errorf("invalid kind: %s", value)
	}
	return kind, nil
}

// PathPrefix returns the URL prefix detail pages of this kind live under.
func (k Kind) PathPrefix() string {
	if prefix, ok := kindPathPrefixes[k]; ok {
		return prefix
	}
	return "/"
}

func IsValidTheme(theme Theme) bool {
	return theme == ThemeLight || theme == ThemeDark
}

func ParseTheme(raw string) (Theme, error) {
	value := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !IsValidTheme(value) {
		return "", fmt.Errorf("invalid theme: %s", raw)
	}
	return value, nil
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
