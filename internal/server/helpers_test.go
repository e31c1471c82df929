package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
	"inkwell/internal/store"
)

var fixedNow = time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

const helloWorldPost = `---
title: Hello World
date: 2025-03-01
tags: [go, design]
excerpt: The first post on the new site.
author: Ada
---
## Intro

Some opening words.

![Studio at night|large|center|shadow|caption=The studio at night](/img/studio.jpg)

> [!TIP]
> Keep posts short.

## Details

More words.
`

const fastBuildsPost = `---
title: Fast Builds
date: 2025-04-01
tags: [go, tooling]
excerpt: How we keep builds under a minute.
---
Builds should be fast.
`

const acmeProject = `---
title: Acme Rebrand
date: 2024-11-10
client: Acme Corp
services: [Identity, Web]
tags: [branding]
featured: true
---
A full rebrand.
`

const portfolioProject = `---
title: Hello World Site
date: 2025-02-02
tags: [web]
---
A small site.
`

type testEnv struct {
	cfg      config.Config
	store    *store.Store
	server   *Server
	handler  http.Handler
	postsDir string
}

func writeContentFile(t testing.TB, root, rel, data string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// newTestEnv builds a server over a small content tree and a fresh database.
func newTestEnv(t testing.TB, mutate func(*config.Config)) *testEnv {
	t.Helper()

	root := t.TempDir()
	postsDir := filepath.Join(root, "posts")
	projectsDir := filepath.Join(root, "projects")
	writeContentFile(t, postsDir, "design/hello-world.md", helloWorldPost)
	writeContentFile(t, postsDir, "engineering/fast-builds.md", fastBuildsPost)
	writeContentFile(t, postsDir, "engineering/broken.md", "---\ntitle: [unclosed\n---\nBody\n")
	writeContentFile(t, projectsDir, "branding/acme-rebrand.md", acmeProject)
	writeContentFile(t, projectsDir, "web/hello-world.md", portfolioProject)

	cfg := config.Default()
	cfg.Site.BaseURL = "https://inkwell.example"
	cfg.Site.Description = "Independent design studio"
	cfg.Content.PostsDir = postsDir
	cfg.Content.ProjectsDir = projectsDir
	if mutate != nil {
		mutate(&cfg)
	}

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv, err := New("127.0.0.1:0", Options{
		Config:  cfg,
		Store:   st,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     func() time.Time { return fixedNow },
		Version: "test",
	})
	require.NoError(t, err)

	return &testEnv{cfg: cfg, store: st, server: srv, handler: srv.Handler(), postsDir: postsDir}
}

func (e *testEnv) do(t testing.TB, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t testing.TB, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, newGet(target))
}

func (e *testEnv) postForm(t testing.TB, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, newPostForm(target, form))
}

func parseHTML(t testing.TB, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func cardLinks(doc *goquery.Document) []string {
	var out []string
	doc.Find("article.card h2 a").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		out = append(out, href)
	})
	return out
}

func newGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func newPostForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
