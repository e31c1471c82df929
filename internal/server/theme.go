package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/models"
)

const (
	themeCookieName   = "inkwell_theme"
	themeCookieMaxAge = 365 * 24 * time.Hour
)

type themeContextKey struct{}

func withThemeContext(ctx context.Context, theme models.Theme) context.Context {
	return context.WithValue(ctx, themeContextKey{}, theme)
}

func themeFromContext(ctx context.Context, fallback models.Theme) models.Theme {
	if theme, ok := ctx.Value(themeContextKey{}).(models.Theme); ok && models.IsValidTheme(theme) {
		return theme
	}
	return fallback
}

// requestTheme reads the theme cookie, falling back to the site default.
func (s *Server) requestTheme(r *http.Request) models.Theme {
	if cookie, err := r.Cookie(themeCookieName); err == nil {
		if theme, err := models.ParseTheme(cookie.Value); err == nil {
			return theme
		}
	}
	return s.defaultTheme()
}

func (s *Server) withTheme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := withThemeContext(r.Context(), s.requestTheme(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handleTheme stores the requested theme, or flips the current one, and
// sends the visitor back where they came from.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, defaultFormMaxBody)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, badRequestCode(err, ErrCodeInvalidForm))
		return
	}

	theme, err := models.ParseTheme(r.PostFormValue("theme"))
	if err != nil {
		theme = s.requestTheme(r).Toggle()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     themeCookieName,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   requestScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("return")), http.StatusSeeOther)
}

// safeReturnPath only accepts site-relative paths.
func safeReturnPath(raw string) string {
	value := strings.TrimSpace(raw)
	if !strings.HasPrefix(value, "/") || strings.HasPrefix(value, "//") || strings.ContainsAny(value, "\\\r\n") {
		return "/"
	}
	return value
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-Proto"), ",")[0]); proto != "" {
		return strings.ToLower(proto)
	}
	return "http"
}
