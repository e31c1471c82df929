package render

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"inkwell/internal/models"
)

const (
	tocMinLevel = 2
	tocMaxLevel = 3
)

func collectTOC(doc ast.Node, source []byte) []models.TOCEntry {
	toc := []models.TOCEntry{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level >= tocMinLevel && heading.Level <= tocMaxLevel {
			entry := models.TOCEntry{Level: heading.Level, Text: nodeText(heading, source)}
			if v, ok := heading.AttributeString("id"); ok {
				if id, ok := v.([]byte); ok {
					entry.ID = string(id)
				}
			}
			toc = append(toc, entry)
		}
		return ast.WalkSkipChildren, nil
	})
	return toc
}

// nodeText concatenates the text below n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
