package server

import (
	"net/http"
	"path"
	"strings"

	"inkwell/internal/site"
)

func (s *Server) assetHandler() http.Handler {
	fileServer := http.StripPrefix("/assets/", http.FileServerFS(site.Assets()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") || strings.HasSuffix(r.URL.Path, "/") {
			s.renderError(w, r, notFound(nil))
			return
		}

		asset := strings.TrimPrefix(r.URL.Path, "/assets/")
		if isFingerprintAsset(asset) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		fileServer.ServeHTTP(w, r)
	})
}

// isFingerprintAsset reports whether the name carries a content hash, as in
// site.3f2a9c1d.css.
func isFingerprintAsset(assetPath string) bool {
	base := path.Base(strings.TrimSpace(assetPath))
	parts := strings.Split(base, ".")
	if len(parts) < 3 {
		return false
	}

	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, ch := range hash {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') && (ch < 'A' || ch > 'F') {
			return false
		}
	}
	return true
}
