package render

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	calloutAttribute = "callout"
	calloutBanner    = "banner"
)

var (
	calloutPattern = regexp.MustCompile(`^\s*\[!([A-Za-z]+)\][ \t]*`)
	calloutKinds   = map[string]struct{}{
		"note":        {},
		"tip":         {},
		"info":        {},
		"warning":     {},
		"danger":      {},
		calloutBanner: {},
	}
)

// calloutTransformer marks blockquotes whose first line starts with a known
// "[!KIND]" marker and removes the marker from the text.
type calloutTransformer struct{}

func (calloutTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var quotes []*ast.Blockquote
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if q, ok := n.(*ast.Blockquote); ok && entering {
			quotes = append(quotes, q)
		}
		return ast.WalkContinue, nil
	})

	for _, q := range quotes {
		markCallout(q, source)
	}
}

func markCallout(q *ast.Blockquote, source []byte) {
	para, ok := q.FirstChild().(*ast.Paragraph)
	if !ok || para.Lines().Len() == 0 {
		return
	}
	line := para.Lines().At(0)
	value := line.Value(source)
	loc := calloutPattern.FindSubmatchIndex(value)
	if loc == nil {
		return
	}
	kind := strings.ToLower(string(value[loc[2]:loc[3]]))
	if !has(calloutKinds, kind) {
		return
	}

	end := line.Start + loc[1] - line.Padding
	if end < line.Start {
		end = line.Start
	}
	stripLeadingText(para, end)
	if para.ChildCount() == 0 {
		q.RemoveChild(q, para)
	}
	q.SetAttributeString(calloutAttribute, []byte(kind))
}

// stripLeadingText drops the inline text before source offset end.
func stripLeadingText(para ast.Node, end int) {
	child := para.FirstChild()
	for child != nil {
		next := child.NextSibling()
		t, ok := child.(*ast.Text)
		if !ok || t.Segment.Start >= end {
			return
		}
		if t.Segment.Stop > end {
			t.Segment = t.Segment.WithStart(end)
			return
		}
		para.RemoveChild(para, child)
		child = next
	}
}

func calloutKind(node ast.Node) string {
	v, ok := node.AttributeString(calloutAttribute)
	if !ok {
		return ""
	}
	kind, _ := v.([]byte)
	return string(kind)
}

func (r *presentationRenderer) renderBlockquote(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	kind := calloutKind(node)
	switch {
	case kind == calloutBanner:
		if entering {
			_, _ = w.WriteString("<aside class=\"banner\">\n")
		} else {
			_, _ = w.WriteString("</aside>\n")
		}
	case kind != "":
		if entering {
			_, _ = w.WriteString(`<div class="callout callout-` + kind + "\" role=\"note\">\n")
		} else {
			_, _ = w.WriteString("</div>\n")
		}
	default:
		if entering {
			_, _ = w.WriteString("<blockquote>\n")
		} else {
			_, _ = w.WriteString("</blockquote>\n")
		}
	}
	return ast.WalkContinue, nil
}

// presentationRenderer overrides the default HTML for images, paragraphs and
// blockquotes.
type presentationRenderer struct {
	unsafe bool
}

func (r *presentationRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
}
