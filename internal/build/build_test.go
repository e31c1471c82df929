package build

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/server"
)

var fixedNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	server   *server.Server
	posts    []models.Record
	projects []models.Record
}

func newFixture(t *testing.T, extraPosts ...string) fixture {
	t.Helper()
	root := t.TempDir()
	postsDir := filepath.Join(root, "posts")
	projectsDir := filepath.Join(root, "projects")

	writeFile(t, filepath.Join(postsDir, "web", "hello-world.md"), "---\ntitle: Hello World\ndate: 2025-03-01\ntags: [go]\n---\n## Intro\n\nFirst post.\n")
	writeFile(t, filepath.Join(postsDir, "notes", "fast-builds.md"), "---\ntitle: Fast Builds\ndate: 2025-04-01\n---\nBuilds should be fast.\n")
	writeFile(t, filepath.Join(postsDir, "notes", "web.md"), "---\ntitle: Shadowed\ndate: 2025-01-01\n---\nShares a name with a category.\n")
	for _, rel := range extraPosts {
		writeFile(t, filepath.Join(postsDir, filepath.FromSlash(rel)), "---\ndate: 2025-02-01\n---\nBody.\n")
	}
	writeFile(t, filepath.Join(projectsDir, "branding", "acme.md"), "---\ntitle: Acme Rebrand\ndate: 2024-11-10\nclient: Acme Corp\nfeatured: true\n---\nA full rebrand.\n")

	cfg := config.Default()
	cfg.Content.PostsDir = postsDir
	cfg.Content.ProjectsDir = projectsDir
	cfg.Site.BaseURL = "https://inkwell.example"

	srv, err := server.New("127.0.0.1:0", server.Options{
		Config: cfg,
		Logger: discardLogger(),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	posts, err := srv.LoadContent(context.Background(), models.KindPost)
	require.NoError(t, err)
	projects, err := srv.LoadContent(context.Background(), models.KindProject)
	require.NoError(t, err)

	return fixture{server: srv, posts: posts, projects: projects}
}

func (f fixture) options(outDir string) Options {
	return Options{
		OutDir:   outDir,
		Handler:  f.server.Handler(),
		Posts:    f.posts,
		Projects: f.projects,
		Logger:   discardLogger(),
	}
}

func TestBuildWritesEveryPage(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "public")

	result, err := Build(t.Context(), f.options(out))
	require.NoError(t, err)

	expected := []string{
		"index.html",
		"blog/index.html",
		"work/index.html",
		"blog/web/hello-world/index.html",
		"blog/notes/fast-builds/index.html",
		"blog/notes/web/index.html",
		"work/branding/acme/index.html",
		"about/index.html",
		"services/index.html",
		"careers/index.html",
		"privacy/index.html",
		"contact/index.html",
		"feed.xml",
		"404.html",
		"assets/css/site.css",
		"assets/js/filter.js",
	}
	for _, rel := range expected {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}
	// 3 lists, 4 details, 4 static pages, contact, feed and the 404 page.
	assert.Equal(t, 14, result.Pages)
	assert.Equal(t, 2, result.Assets)
}

func TestBuildDetailPageContent(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "public")
	_, err := Build(t.Context(), f.options(out))
	require.NoError(t, err)

	doc := readHTML(t, filepath.Join(out, "blog", "web", "hello-world", "index.html"))
	assert.Equal(t, "Hello World", strings.TrimSpace(doc.Find("article.detail h1").First().Text()))
	assert.Equal(t, 1, doc.Find(".prose h2#intro").Length())

	notFound := readHTML(t, filepath.Join(out, "404.html"))
	assert.Equal(t, "Page not found", strings.TrimSpace(notFound.Find(".error-page h1").Text()))
}

func TestBuildWritesSlugRedirects(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "public")
	result, err := Build(t.Context(), f.options(out))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "blog", "hello-world", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `content="0; url=/blog/web/hello-world"`)
	assert.FileExists(t, filepath.Join(out, "work", "acme", "index.html"))

	// "web" is both a slug and a category; both pages live under blog/web.
	data, err = os.ReadFile(filepath.Join(out, "blog", "web", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `url=/blog/notes/web`)
	assert.FileExists(t, filepath.Join(out, "blog", "web", "hello-world", "index.html"))
	assert.Equal(t, 4, result.Redirects)
}

func TestBuildEscapesSlugsFromFileNames(t *testing.T) {
	f := newFixture(t, "web/my post.md", "web/100%-done.md")
	out := filepath.Join(t.TempDir(), "public")

	result, err := Build(t.Context(), f.options(out))
	require.NoError(t, err)
	assert.Equal(t, 16, result.Pages)
	assert.Equal(t, 6, result.Redirects)

	doc := readHTML(t, filepath.Join(out, "blog", "web", "my post", "index.html"))
	assert.Equal(t, "my post", strings.TrimSpace(doc.Find("article.detail h1").First().Text()))
	assert.FileExists(t, filepath.Join(out, "blog", "web", "100%-done", "index.html"))

	data, err := os.ReadFile(filepath.Join(out, "blog", "100%-done", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `url=/blog/web/100%25-done`)
	data, err = os.ReadFile(filepath.Join(out, "blog", "my post", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `url=/blog/web/my%20post`)

	file, err := os.Open(filepath.Join(out, "feed.xml"))
	require.NoError(t, err)
	defer file.Close()
	feed, err := gofeed.NewParser().Parse(file)
	require.NoError(t, err)
	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		links = append(links, item.Link)
	}
	assert.Contains(t, links, "https://inkwell.example/blog/web/my%20post")
	assert.Contains(t, links, "https://inkwell.example/blog/web/100%25-done")
}

func TestBuildFeedParses(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "public")
	_, err := Build(t.Context(), f.options(out))
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(out, "feed.xml"))
	require.NoError(t, err)
	defer file.Close()

	feed, err := gofeed.NewParser().Parse(file)
	require.NoError(t, err)
	require.Len(t, feed.Items, 3)
	assert.Equal(t, "https://inkwell.example/blog/notes/fast-builds", feed.Items[0].Link)
}

func TestBuildCleansOutDir(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "public")
	writeFile(t, filepath.Join(out, "stale", "index.html"), "old")

	_, err := Build(t.Context(), f.options(out))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "stale"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildRejectsUnsafeOutDir(t *testing.T) {
	f := newFixture(t)
	for _, dir := range []string{"", "  ", "/"} {
		_, err := Build(t.Context(), f.options(dir))
		assert.Error(t, err, "out dir %q", dir)
	}

	_, err := Build(t.Context(), Options{OutDir: t.TempDir()})
	assert.Error(t, err)
}

func TestBuildFailsOnBrokenPage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := Build(t.Context(), Options{OutDir: out, Handler: failing, Logger: discardLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestBuildStopsWhenCanceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Build(ctx, f.options(filepath.Join(t.TempDir(), "public")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"/":                    "index.html",
		"/blog/":               "blog/index.html",
		"/blog/web/hello":      "blog/web/hello/index.html",
		"/about":               "about/index.html",
		"/feed.xml":            "feed.xml",
		"/assets/css/site.css": "assets/css/site.css",
		"/blog/web/my%20post":  "blog/web/my post/index.html",
		"/blog/100%25-done":    "blog/100%-done/index.html",
	}
	for in, want := range cases {
		assert.Equal(t, want, outputPath(in), in)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func readHTML(t *testing.T, path string) *goquery.Document {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	doc, err := goquery.NewDocumentFromReader(file)
	require.NoError(t, err)
	return doc
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
