// Package site holds the page templates and static assets of the public
// site.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"inkwell/internal/content"
	"inkwell/internal/models"
	"inkwell/internal/search"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed all:assets
var assetFS embed.FS

// Page template names.
const (
	TemplateHome     = "home"
	TemplateList     = "list"
	TemplatePost     = "post"
	TemplateProject  = "project"
	TemplateContact  = "contact"
	TemplateNotFound = "notfound"
	TemplateError    = "error"
	TemplateInbox    = "inbox"
)

var sharedTemplates = []string{"templates/layout.html", "templates/partials.html"}

// Meta describes the site itself.
type Meta struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// NavItem is one entry of the main navigation.
type NavItem struct {
	Label string
	Path  string
}

var nav = []NavItem{
	{Label: "Work", Path: "/work/"},
	{Label: "Blog", Path: "/blog/"},
	{Label: "Services", Path: "/services"},
	{Label: "About", Path: "/about"},
	{Label: "Careers", Path: "/careers"},
	{Label: "Contact", Path: "/contact"},
}

// Page is what every template receives. Theme is always set explicitly by
// the caller.
type Page struct {
	Site        Meta
	Theme       models.Theme
	Title       string
	Description string
	Path        string
	Data        any
	Now         time.Time
}

// FullTitle is the document title.
func (p Page) FullTitle() string {
	if p.Title == "" || p.Title == p.Site.Title {
		return p.Site.Title
	}
	return p.Title + " · " + p.Site.Title
}

// Canonical is the absolute URL of the page, or "" without a base URL.
func (p Page) Canonical() string {
	if p.Site.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(p.Site.BaseURL, "/") + p.Path
}

// Nav returns the main navigation.
func (p Page) Nav() []NavItem {
	return nav
}

// IsActive reports whether the navigation entry at path covers this page.
func (p Page) IsActive(path string) bool {
	if strings.HasSuffix(path, "/") {
		return strings.HasPrefix(p.Path, path)
	}
	return p.Path == path
}

// Year is the copyright year.
func (p Page) Year() int {
	if p.Now.IsZero() {
		return time.Now().Year()
	}
	return p.Now.Year()
}

// HomeData feeds the home page.
type HomeData struct {
	Posts    []models.Record
	Projects []models.Record
}

// ListData feeds the blog and work listings.
type ListData struct {
	Kind       models.Kind
	Heading    string
	Intro      string
	BasePath   string
	Records    []models.Record
	Total      int
	Filter     search.Filter
	Categories []search.Facet
	Tags       []search.Facet
}

// DetailData feeds post and project pages.
type DetailData struct {
	Record  models.Record
	HTML    template.HTML
	TOC     []models.TOCEntry
	Related []models.Record
}

// ContactData feeds the contact page.
type ContactData struct {
	Form    models.ContactForm
	Errors  models.FieldErrors
	Sent    bool
	Budgets []string
}

// InboxData feeds the admin inbox.
type InboxData struct {
	Messages   []models.ContactMessage
	Total      int
	Limit      int
	Offset     int
	PrevOffset int
	NextOffset int
	HasPrev    bool
	HasNext    bool
}

// ErrorData feeds the not found and error pages.
type ErrorData struct {
	Status  int
	Message string
}

// Templates is the parsed template set, one tree per page.
type Templates struct {
	pages map[string]*template.Template
}

// Load parses every page template together with the layout and partials.
func Load() (*Templates, error) {
	names := []string{
		TemplateHome, TemplateList, TemplatePost, TemplateProject,
		TemplateContact, TemplateNotFound, TemplateError, TemplateInbox,
	}
	for _, page := range staticPages {
		names = append(names, page.Slug)
	}

	t := &Templates{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		patterns := append([]string{"templates/" + name + ".html"}, sharedTemplates...)
		tmpl, err := template.New(name).Funcs(funcMap()).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

// Has reports whether name is a known page template.
func (t *Templates) Has(name string) bool {
	_, ok := t.pages[name]
	return ok
}

// Render executes the named page into w. Nothing is written when execution
// fails.
func (t *Templates) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Assets returns the static asset tree served under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"date":          formatDate,
		"isoDate":       formatISODate,
		"categoryLabel": content.CategoryLabel,
		"join":          strings.Join,
		"filterURL": func(base string, f search.Filter) string {
			return base + f.Encode()
		},
		"toggleTag": func(f search.Filter, tag string) search.Filter {
			return f.Toggle(tag)
		},
		"withCategory": func(f search.Filter, category string) search.Filter {
			return f.WithCategory(category)
		},
		"budgetLabel": BudgetLabel,
		"fieldError": func(errs models.FieldErrors, field string) string {
			return errs[field]
		},
	}
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	default:
		return time.Time{}, false
	}
}

func formatDate(v any) string {
	t, ok := timeValue(v)
	if !ok {
		return ""
	}
	return t.Format("January 2, 2006")
}

func formatISODate(v any) string {
	t, ok := timeValue(v)
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}

var budgetLabels = map[string]string{
	"under-10k": "Under $10k",
	"10k-50k":   "$10k to $50k",
	"50k-100k":  "$50k to $100k",
	"over-100k": "Over $100k",
}

// BudgetLabel is the display text for a budget option.
func BudgetLabel(value string) string {
	if label, ok := budgetLabels[value]; ok {
		return label
	}
	return value
}
