package server

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
	"inkwell/internal/models"
)

func themeOf(t *testing.T, env *testEnv, req *http.Request) string {
	t.Helper()
	w := env.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)
	theme, _ := parseHTML(t, w).Find("html").Attr("data-theme")
	return theme
}

func TestThemeCookieDrivesRendering(t *testing.T) {
	env := newTestEnv(t, nil)

	req := newGet("/about")
	assert.Equal(t, "light", themeOf(t, env, req))

	req = newGet("/about")
	req.AddCookie(&http.Cookie{Name: themeCookieName, Value: "dark"})
	assert.Equal(t, "dark", themeOf(t, env, req))

	req = newGet("/about")
	req.AddCookie(&http.Cookie{Name: themeCookieName, Value: "purple"})
	assert.Equal(t, "light", themeOf(t, env, req))
}

func TestThemeDefaultComesFromConfig(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Site.DefaultTheme = "dark"
	})
	assert.Equal(t, "dark", themeOf(t, env, newGet("/blog/")))
}

func TestThemeToggle(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.postForm(t, "/theme", url.Values{"theme": {"dark"}, "return": {"/blog/?tag=go"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/blog/?tag=go", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, themeCookieName, cookies[0].Name)
	assert.Equal(t, "dark", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// Without an explicit theme the current one flips.
	req := newPostForm("/theme", url.Values{"return": {"/about"}})
	req.AddCookie(&http.Cookie{Name: themeCookieName, Value: "dark"})
	w = env.do(t, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "light", w.Result().Cookies()[0].Value)
}

func TestSafeReturnPath(t *testing.T) {
	cases := map[string]string{
		"":                    "/",
		"/work/":              "/work/",
		"//evil.example/":     "/",
		"https://evil.test/":  "/",
		"/\\evil":             "/",
		"relative":            "/",
		"/blog/?q=a%20b#top":  "/blog/?q=a%20b#top",
		"/x\r\nSet-Cookie: a": "/",
	}
	for input, want := range cases {
		assert.Equal(t, want, safeReturnPath(input), input)
	}
}

func TestThemeContext(t *testing.T) {
	ctx := withThemeContext(newGet("/").Context(), models.ThemeDark)
	assert.Equal(t, models.ThemeDark, themeFromContext(ctx, models.ThemeLight))
	assert.Equal(t, models.ThemeLight, themeFromContext(newGet("/").Context(), models.ThemeLight))
}
