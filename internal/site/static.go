package site

// StaticPage is one of the fixed informational pages.
type StaticPage struct {
	Slug        string
	Title       string
	Description string
}

var staticPages = []StaticPage{
	{Slug: "about", Title: "About", Description: "Who we are and how we work."},
	{Slug: "services", Title: "Services", Description: "Brand, digital product and content services."},
	{Slug: "careers", Title: "Careers", Description: "Open roles and what it is like to work with us."},
	{Slug: "privacy", Title: "Privacy", Description: "How we handle the data you send us."},
}

// StaticPages lists the informational pages in navigation order.
func StaticPages() []StaticPage {
	out := make([]StaticPage, len(staticPages))
	copy(out, staticPages)
	return out
}

// LookupStaticPage finds an informational page by slug.
func LookupStaticPage(slug string) (StaticPage, bool) {
	for _, page := range staticPages {
		if page.Slug == slug {
			return page, true
		}
	}
	return StaticPage{}, false
}
