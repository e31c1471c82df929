package server

import (
	"fmt"
	"net/http"

	"inkwell/internal/site"
)

const adminRealm = `Basic realm="inkwell admin", charset="UTF-8"`

// requireAdmin guards the inbox with HTTP basic auth. Without a configured
// password hash the inbox does not exist.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.admin.Enabled() {
			s.handleNotFound(w, r)
			return
		}

		now := s.now()
		key := requestClientIP(r)
		if !s.adminLimiter.Allow(key, now) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(adminBlockedFor.Seconds())))
			s.renderError(w, r, tooManyRequests(fmt.Errorf("too many login attempts; retry later")))
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok || !s.admin.Verify(username, password) {
			if ok {
				s.adminLimiter.RegisterFailure(key, now)
			}
			w.Header().Set("WWW-Authenticate", adminRealm)
			s.renderError(w, r, unauthorized(fmt.Errorf("invalid credentials")))
			return
		}
		s.adminLimiter.Reset(key)

		w.Header().Set("Cache-Control", "no-store")
		next(w, r)
	}
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.renderError(w, r, makeHTTPError(http.StatusInternalServerError, "internal", ErrCodeStoreUnavailable, fmt.Errorf("contact store is not configured")))
		return
	}

	limit, err := queryIntDefault(r, "limit", defaultInboxLimit)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if limit == 0 {
		limit = defaultInboxLimit
	}
	limit = min(limit, maxInboxLimit)
	offset, err := queryIntDefault(r, "offset", 0)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	messages, err := s.store.ListMessages(r.Context(), limit, offset)
	if err != nil {
		s.renderError(w, r, storeFailure(err))
		return
	}
	total, err := s.store.CountMessages(r.Context())
	if err != nil {
		s.renderError(w, r, storeFailure(err))
		return
	}

	s.renderPage(w, r, http.StatusOK, site.TemplateInbox, site.Page{
		Title: "Messages",
		Data: site.InboxData{
			Messages:   messages,
			Total:      total,
			Limit:      limit,
			Offset:     offset,
			HasPrev:    offset > 0,
			PrevOffset: max(offset-limit, 0),
			HasNext:    offset+len(messages) < total,
			NextOffset: offset + len(messages),
		},
	})
}
