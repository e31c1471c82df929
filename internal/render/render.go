// Package render turns markdown bodies into sanitized HTML with the site's
// figure and callout conventions.
package render

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"inkwell/internal/models"
)

// Options tunes a Renderer.
type Options struct {
	// AllowHTML passes raw HTML in bodies through to the sanitizer instead of
	// dropping it.
	AllowHTML bool
}

// Document is one rendered body.
type Document struct {
	HTML template.HTML
	TOC  []models.TOCEntry
}

// Renderer is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func New(opts Options) *Renderer {
	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(&presentationRenderer{unsafe: opts.AllowHTML}, 100)),
	}
	if opts.AllowHTML {
		rendererOptions = append(rendererOptions, gmhtml.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(calloutTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)

	return &Renderer{
		md:     md,
		policy: newPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Render converts body to HTML and collects its table of contents.
func (r *Renderer) Render(body string) (Document, error) {
	source := []byte(body)
	doc := r.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return Document{}, fmt.Errorf("render markdown: %w", err)
	}

	return Document{
		HTML: template.HTML(r.policy.SanitizeBytes(buf.Bytes())),
		TOC:  collectTOC(doc, source),
	}, nil
}

// PlainText renders body and keeps only its text, on one line.
func (r *Renderer) PlainText(body string) (string, error) {
	doc, err := r.Render(body)
	if err != nil {
		return "", err
	}
	stripped := stdhtml.UnescapeString(r.strict.Sanitize(string(doc.HTML)))
	return strings.Join(strings.Fields(stripped), " "), nil
}
