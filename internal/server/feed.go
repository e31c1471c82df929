package server

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/content"
	"inkwell/internal/models"
)

type rssFeed struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	AtomNS    string     `xml:"xmlns:atom,attr"`
	DCNS      string     `xml:"xmlns:dc,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string      `xml:"title"`
	Link          string      `xml:"link"`
	Description   string      `xml:"description"`
	Language      string      `xml:"language,omitempty"`
	LastBuildDate string      `xml:"lastBuildDate,omitempty"`
	AtomLink      rssAtomLink `xml:"atom:link"`
	Items         []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string      `xml:"title"`
	Link        string      `xml:"link"`
	GUID        rssGUID     `xml:"guid"`
	PubDate     string      `xml:"pubDate"`
	Description string      `xml:"description"`
	Author      string      `xml:"dc:creator,omitempty"`
	Categories  []string    `xml:"category"`
	Content     *rssContent `xml:"content:encoded,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssContent struct {
	Value string `xml:",cdata"`
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := s.loadRecords(r.Context(), models.KindPost)
	if err != nil {
		s.renderError(w, r, contentFailure(err))
		return
	}

	base := s.baseURL(r)
	feed := rssFeed{
		Version:   "2.0",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		AtomNS:    "http://www.w3.org/2005/Atom",
		DCNS:      "http://purl.org/dc/elements/1.1/",
		Channel: rssChannel{
			Title:       s.cfg.Site.Title,
			Link:        base + "/",
			Description: s.cfg.Site.Description,
			Language:    s.cfg.Site.Language,
			AtomLink:    rssAtomLink{Href: base + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
			Items:       make([]rssItem, 0, len(posts)),
		},
	}
	if feed.Channel.Description == "" {
		feed.Channel.Description = s.cfg.Site.Title
	}
	if len(posts) > 0 {
		feed.Channel.LastBuildDate = latestChange(posts).Format(time.RFC1123Z)
	}

	for _, post := range posts {
		link := base + post.Path()
		item := rssItem{
			Title:       post.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			PubDate:     post.Date.Format(time.RFC1123Z),
			Description: post.Excerpt,
			Author:      post.Author,
			Categories:  append([]string{content.CategoryLabel(post.Category)}, post.Tags...),
		}
		if doc, err := s.renderer.Render(post.Body); err == nil {
			item.Content = &rssContent{Value: string(doc.HTML)}
		} else {
			s.log().Warn("render feed item", "path", post.SourcePath, "error", err)
		}
		feed.Channel.Items = append(feed.Channel.Items, item)
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		s.renderError(w, r, renderFailure(err))
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append([]byte(xml.Header), out...)); err != nil {
		s.log().Debug("write feed", "error", err)
	}
}

func latestChange(records []models.Record) time.Time {
	var latest time.Time
	for _, record := range records {
		changed := record.Date
		if record.Modified != nil && record.Modified.After(changed) {
			changed = *record.Modified
		}
		if changed.After(latest) {
			latest = changed
		}
	}
	return latest
}

// baseURL is the configured public URL, or the one the request came in on.
func (s *Server) baseURL(r *http.Request) string {
	if base := strings.TrimRight(strings.TrimSpace(s.cfg.Site.BaseURL), "/"); base != "" {
		return base
	}
	return requestScheme(r) + "://" + r.Host
}
