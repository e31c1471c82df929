package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/content"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/site"
	"inkwell/internal/store"
)

const (
	allowRemoteEnvKey = "INKWELL_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second

	adminMaxFailures = 5
	adminWindow      = 5 * time.Minute
	adminBlockedFor  = 15 * time.Minute
)

// Options wires a Server's collaborators. Only Config is required.
type Options struct {
	Config    config.Config
	Store     store.MessageStore
	Renderer  *render.Renderer
	Templates *site.Templates
	History   content.History
	Logger    *slog.Logger
	// Now defaults to time.Now.
	Now     func() time.Time
	Version string
}

// Server serves the site pages, the feed and the JSON endpoints.
type Server struct {
	addr           string
	cfg            config.Config
	store          store.MessageStore
	renderer       *render.Renderer
	templates      *site.Templates
	history        content.History
	logger         *slog.Logger
	admin          auth.Admin
	adminLimiter   *authFailureLimiter
	contactLimiter *ipRateLimiter
	now            func() time.Time
	version        string
}

// New creates a new server instance.
func New(addr string, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templates := opts.Templates
	if templates == nil {
		loaded, err := site.Load()
		if err != nil {
			return nil, err
		}
		templates = loaded
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New(render.Options{AllowHTML: opts.Config.Render.AllowHTML})
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	contactRate := rate.Inf
	if opts.Config.Contact.RatePerMinute > 0 {
		contactRate = rate.Limit(float64(opts.Config.Contact.RatePerMinute) / 60)
	}

	return &Server{
		addr:      addr,
		cfg:       opts.Config,
		store:     opts.Store,
		renderer:  renderer,
		templates: templates,
		history:   opts.History,
		logger:    logger,
		admin: auth.Admin{
			Username:     opts.Config.Admin.Username,
			PasswordHash: opts.Config.Admin.PasswordHash,
		},
		adminLimiter:   newAuthFailureLimiter(adminMaxFailures, adminWindow, adminBlockedFor),
		contactLimiter: newIPRateLimiter(contactRate, opts.Config.Contact.Burst),
		now:            now,
		version:        opts.Version,
	}, nil
}

// Handler returns the full handler chain, including request logging.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.routes())
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base site URL into a listen address.
func ListenAddr(listenURL string) (string, error) {
	if listenURL == "" {
		return "", fmt.Errorf("listen url is required")
	}
	if u, err := url.Parse(listenURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(listenURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return listenURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

func (s *Server) siteMeta() site.Meta {
	return site.Meta{
		Title:       s.cfg.Site.Title,
		Description: s.cfg.Site.Description,
		BaseURL:     s.cfg.Site.BaseURL,
		Author:      s.cfg.Site.Author,
		Language:    s.cfg.Site.Language,
	}
}

func (s *Server) defaultTheme() models.Theme {
	theme, err := models.ParseTheme(s.cfg.Site.DefaultTheme)
	if err != nil {
		return models.ThemeLight
	}
	return theme
}

func (s *Server) relatedLimit() int {
	if s.cfg.Content.RelatedLimit > 0 {
		return s.cfg.Content.RelatedLimit
	}
	return models.DefaultRelatedLimit
}

func (s *Server) maxMessageBytes() int {
	if s.cfg.Contact.MaxMessageBytes > 0 {
		return s.cfg.Contact.MaxMessageBytes
	}
	return config.DefaultContactMaxMessage
}
