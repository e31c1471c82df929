package render

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	imageSizes   = map[string]struct{}{"small": {}, "medium": {}, "large": {}, "full": {}}
	imageAligns  = map[string]struct{}{"left": {}, "center": {}, "right": {}}
	imageEffects = map[string]struct{}{"shadow": {}, "rounded": {}, "border": {}, "grayscale": {}}
)

// imageDisplay is the presentation encoded in an image's alt text as
// "alt|token|token".
type imageDisplay struct {
	Alt     string
	Size    string
	Align   string
	Effects []string
	Caption string
}

func (s imageDisplay) classes() string {
	classes := []string{"figure"}
	if s.Size != "" {
		classes = append(classes, "size-"+s.Size)
	}
	if s.Align != "" {
		classes = append(classes, "align-"+s.Align)
	}
	for _, effect := range s.Effects {
		classes = append(classes, "effect-"+effect)
	}
	return strings.Join(classes, " ")
}

// parseImageAlt reads the pipe separated tokens after the alt text. ok is
// false when no token is recognized; the alt text is then used verbatim.
func parseImageAlt(raw string) (imageDisplay, bool) {
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		return imageDisplay{Alt: raw}, false
	}

	display := imageDisplay{Alt: strings.TrimSpace(parts[0])}
	recognized := false
	for _, part := range parts[1:] {
		token := strings.TrimSpace(part)
		key, value, keyed := strings.Cut(token, "=")
		if !keyed {
			key, value = "", token
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		lower := strings.ToLower(value)

		switch {
		case key == "caption":
			if value != "" {
				display.Caption = value
				recognized = true
			}
		case (key == "" || key == "size") && has(imageSizes, lower):
			display.Size = lower
			recognized = true
		case (key == "" || key == "align") && has(imageAligns, lower):
			display.Align = lower
			recognized = true
		case (key == "" || key == "effect") && has(imageEffects, lower):
			display.Effects = append(display.Effects, lower)
			recognized = true
		}
	}
	if !recognized {
		return imageDisplay{Alt: raw}, false
	}
	return display, true
}

func has(set map[string]struct{}, value string) bool {
	_, ok := set[value]
	return ok
}

func (r *presentationRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	display, figure := parseImageAlt(nodeText(n, source))
	if figure {
		_, _ = w.WriteString(`<figure class="`)
		_, _ = w.WriteString(display.classes())
		_, _ = w.WriteString(`">`)
	}
	r.writeImg(w, n, display.Alt)
	if figure {
		if display.Caption != "" {
			_, _ = w.WriteString("<figcaption>")
			_, _ = w.Write(util.EscapeHTML([]byte(display.Caption)))
			_, _ = w.WriteString("</figcaption>")
		}
		_, _ = w.WriteString("</figure>")
	}
	return ast.WalkSkipChildren, nil
}

func (r *presentationRenderer) writeImg(w util.BufWriter, n *ast.Image, alt string) {
	_, _ = w.WriteString(`<img src="`)
	if r.unsafe || !gmhtml.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` loading="lazy">`)
}

// loneFigure reports whether a paragraph holds nothing but a figure image,
// in which case the paragraph wrapper is dropped.
func loneFigure(node ast.Node, source []byte) bool {
	if node.ChildCount() != 1 {
		return false
	}
	img, ok := node.FirstChild().(*ast.Image)
	if !ok {
		return false
	}
	_, figure := parseImageAlt(nodeText(img, source))
	return figure
}

func (r *presentationRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if loneFigure(node, source) {
		if !entering {
			_ = w.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	}
	if entering {
		if node.Attributes() != nil {
			_, _ = w.WriteString("<p")
			gmhtml.RenderAttributes(w, node, gmhtml.ParagraphAttributeFilter)
			_ = w.WriteByte('>')
		} else {
			_, _ = w.WriteString("<p>")
		}
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("</p>\n")
	return ast.WalkContinue, nil
}
