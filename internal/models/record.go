package models

import (
	"net/url"
	"time"
)

// Record is one post or project loaded from the content tree.
type Record struct {
	Kind           Kind       `json:"kind"`
	Category       string     `json:"category"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Date           time.Time  `json:"date"`
	Modified       *time.Time `json:"modified,omitempty"`
	Excerpt        string     `json:"excerpt"`
	Tags           []string   `json:"tags"`
	Image          string     `json:"image,omitempty"`
	Author         string     `json:"author,omitempty"`
	Draft          bool       `json:"draft,omitempty"`
	Client         string     `json:"client,omitempty"`
	Services       []string   `json:"services,omitempty"`
	URL            string     `json:"url,omitempty"`
	Featured       bool       `json:"featured,omitempty"`
	ReadingMinutes int        `json:"reading_minutes"`
	Body           string     `json:"-"`
	SourcePath     string     `json:"-"`
}

// Key identifies a record within its content tree.
func (r Record) Key() string {
	return r.Category + "/" + r.Slug
}

// Path is the site-relative URL of the record's detail page. Category and
// slug come from file names and are escaped as path segments.
func (r Record) Path() string {
	return r.Kind.PathPrefix() + url.PathEscape(r.Category) + "/" + url.PathEscape(r.Slug)
}

// TOCEntry is one heading of a rendered body.
type TOCEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}
