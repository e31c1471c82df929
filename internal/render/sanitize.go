package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	classPattern     = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	headingIDPattern = regexp.MustCompile(`^[\p{L}\p{N}\-_:.]+$`)
)

// newPolicy extends the UGC policy with the markup the renderer emits.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.RequireNoFollowOnFullyQualifiedLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	p.AllowElements("figure", "figcaption", "aside", "div")
	p.AllowAttrs("class").Matching(classPattern).OnElements("figure", "img", "div", "aside", "pre", "code", "span")
	p.AllowAttrs("role").Matching(regexp.MustCompile(`^note$`)).OnElements("div")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowAttrs("loading").Matching(regexp.MustCompile(`^lazy$`)).OnElements("img")
	p.AllowAttrs("id").Matching(headingIDPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	return p
}
