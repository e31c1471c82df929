package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/content"
	"inkwell/internal/models"
	"inkwell/internal/site"
)

const (
	defaultHost    = "localhost"
	notFoundTarget = "/__inkwell_not_found__"
)

// Options describes one static export.
type Options struct {
	OutDir string
	// Handler serves every page that gets written to disk.
	Handler  http.Handler
	Posts    []models.Record
	Projects []models.Record
	// Host is sent with every rendered request. Defaults to localhost.
	Host   string
	Logger *slog.Logger
}

// Result counts what a build wrote.
type Result struct {
	Pages     int
	Redirects int
	Assets    int
	Duration  time.Duration
}

type exporter struct {
	ctx    context.Context
	opts   Options
	result Result
}

// Build renders the whole site through the handler and writes it to OutDir.
// OutDir is removed first.
func Build(ctx context.Context, opts Options) (Result, error) {
	started := time.Now()
	if opts.Handler == nil {
		return Result{}, errors.New("build: handler is required")
	}
	outDir, err := cleanOutDir(opts.OutDir)
	if err != nil {
		return Result{}, err
	}
	opts.OutDir = outDir
	if strings.TrimSpace(opts.Host) == "" {
		opts.Host = defaultHost
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	e := &exporter{ctx: ctx, opts: opts}
	for _, target := range pagePaths(opts.Posts, opts.Projects) {
		if err := e.page(target); err != nil {
			return e.result, err
		}
	}
	if err := e.notFound(); err != nil {
		return e.result, err
	}
	if err := e.redirects(models.KindPost, opts.Posts); err != nil {
		return e.result, err
	}
	if err := e.redirects(models.KindProject, opts.Projects); err != nil {
		return e.result, err
	}
	if err := e.assets(); err != nil {
		return e.result, err
	}

	e.result.Duration = time.Since(started)
	opts.Logger.Info("site built",
		"out", opts.OutDir,
		"pages", e.result.Pages,
		"redirects", e.result.Redirects,
		"assets", e.result.Assets,
		"duration_ms", e.result.Duration.Milliseconds(),
	)
	return e.result, nil
}

// pagePaths lists every URL that has a page of its own, in output order.
func pagePaths(posts, projects []models.Record) []string {
	paths := []string{"/", "/blog/", "/work/"}
	for _, route := range content.Routes(posts) {
		paths = append(paths, route.Path)
	}
	for _, route := range content.Routes(projects) {
		paths = append(paths, route.Path)
	}
	for _, page := range site.StaticPages() {
		paths = append(paths, "/"+page.Slug)
	}
	return append(paths, "/contact", "/feed.xml")
}

func (e *exporter) page(target string) error {
	status, body, _, err := e.fetch(target)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("build %s: unexpected status %d", target, status)
	}
	if err := e.write(outputPath(target), body); err != nil {
		return err
	}
	e.result.Pages++
	return nil
}

func (e *exporter) notFound() error {
	status, body, _, err := e.fetch(notFoundTarget)
	if err != nil {
		return err
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("build 404 page: unexpected status %d", status)
	}
	if err := e.write("404.html", body); err != nil {
		return err
	}
	e.result.Pages++
	return nil
}

// redirects writes a meta-refresh page for every bare slug the server
// would redirect.
func (e *exporter) redirects(kind models.Kind, records []models.Record) error {
	seen := map[string]struct{}{}
	for _, record := range records {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		seen[record.Slug] = struct{}{}
		resolved, ok := content.ResolveSlug(records, record.Slug)
		if !ok {
			continue
		}

		source := kind.PathPrefix() + url.PathEscape(record.Slug)
		status, _, header, err := e.fetch(source)
		if err != nil {
			return err
		}
		if status != http.StatusFound {
			return fmt.Errorf("build redirect %s: unexpected status %d", source, status)
		}
		location := header.Get("Location")
		if location != resolved.Path() {
			return fmt.Errorf("build redirect %s: points to %q, want %q", source, location, resolved.Path())
		}
		if err := e.write(outputPath(source), redirectPage(location)); err != nil {
			return err
		}
		e.result.Redirects++
	}
	return nil
}

func (e *exporter) assets() error {
	assets := site.Assets()
	return fs.WalkDir(assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(assets, name)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", name, err)
		}
		if err := e.write(path.Join("assets", name), data); err != nil {
			return err
		}
		e.result.Assets++
		return nil
	})
}

func (e *exporter) fetch(target string) (int, []byte, http.Header, error) {
	if err := e.ctx.Err(); err != nil {
		return 0, nil, nil, err
	}
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(e.ctx)
	req.Host = e.opts.Host
	rec := httptest.NewRecorder()
	e.opts.Handler.ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read %s: %w", target, err)
	}
	return rec.Code, body, rec.Header(), nil
}

func (e *exporter) write(rel string, data []byte) error {
	dest := filepath.Join(e.opts.OutDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// outputPath maps an escaped URL path to the file a static host serves
// for it.
func outputPath(urlPath string) string {
	if unescaped, err := url.PathUnescape(urlPath); err == nil {
		urlPath = unescaped
	}
	trimmed := strings.Trim(urlPath, "/")
	if trimmed == "" {
		return "index.html"
	}
	if path.Ext(trimmed) != "" {
		return trimmed
	}
	return trimmed + "/index.html"
}

func redirectPage(location string) []byte {
	target := html.EscapeString(location)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<meta http-equiv=\"refresh\" content=\"0; url=%s\">\n", target)
	fmt.Fprintf(&buf, "<link rel=\"canonical\" href=\"%s\">\n<title>Redirecting</title>\n</head>\n", target)
	fmt.Fprintf(&buf, "<body><p>Moved to <a href=\"%s\">%s</a>.</p></body>\n</html>\n", target, target)
	return buf.Bytes()
}

func cleanOutDir(dir string) (string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return "", errors.New("build: output directory is required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	if abs == filepath.Dir(abs) {
		return "", fmt.Errorf("build: refusing to clean %s", abs)
	}
	if cwd, err := os.Getwd(); err == nil && abs == cwd {
		return "", fmt.Errorf("build: refusing to clean the working directory %s", abs)
	}
	if err := os.RemoveAll(abs); err != nil {
		return "", fmt.Errorf("clean output directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return abs, nil
}
