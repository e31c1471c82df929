package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"inkwell/internal/api"
	"inkwell/internal/site"
)

const (
	defaultFormMaxBody = 64 << 10 // 64 KiB
	defaultInboxLimit  = 50
	maxInboxLimit      = 500
)

type httpError struct {
	status  int
	code    string
	errCode int
	err     error
}

func (e httpError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e httpError) Unwrap() error {
	return e.err
}

func makeHTTPError(status int, code string, errCode int, err error) error {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	var existing httpError
	if errors.As(err, &existing) {
		if existing.status != 0 {
			return existing
		}
	}

	return httpError{status: status, code: code, errCode: errCode, err: err}
}

func badRequestCode(err error, code int) error {
	return makeHTTPError(http.StatusBadRequest, "invalid_argument", code, err)
}

func notFound(err error) error {
	return makeHTTPError(http.StatusNotFound, "not_found", ErrCodeRecordNotFound, err)
}

func unauthorized(err error) error {
	return makeHTTPError(http.StatusUnauthorized, "unauthorized", ErrCodeUnauthorized, err)
}

func tooManyRequests(err error) error {
	return makeHTTPError(http.StatusTooManyRequests, "resource_exhausted", ErrCodeResourceExhausted, err)
}

func contentFailure(err error) error {
	return makeHTTPError(http.StatusInternalServerError, "internal", ErrCodeContentFailure, err)
}

func renderFailure(err error) error {
	return makeHTTPError(http.StatusInternalServerError, "internal", ErrCodeRenderFailure, err)
}

func storeFailure(err error) error {
	return makeHTTPError(http.StatusInternalServerError, "internal", ErrCodeStoreFailure, err)
}

func httpStatusFromError(err error) int {
	var httpErr httpError
	if errors.As(err, &httpErr) && httpErr.status != 0 {
		return httpErr.status
	}
	return http.StatusInternalServerError
}

func errorCode(status int, err error) string {
	var httpErr httpError
	if errors.As(err, &httpErr) && httpErr.code != "" {
		return httpErr.code
	}
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnprocessableEntity:
		return "invalid_form"
	case http.StatusTooManyRequests:
		return "resource_exhausted"
	case http.StatusInternalServerError:
		return "internal"
	default:
		return ""
	}
}

func errorNumericCode(status int, err error) int {
	var httpErr httpError
	if errors.As(err, &httpErr) && httpErr.errCode > 0 {
		return httpErr.errCode
	}
	return defaultErrorCodeByStatus(status)
}

func shouldWarnClientError(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// logError logs a failed request and returns the message that is safe to
// show the client.
func (s *Server) logError(r *http.Request, status int, err error) string {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	message := err.Error()
	fields := []any{"status", status, "code", errorCode(status, err), "error_code", errorNumericCode(status, err), "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}

	switch {
	case status >= 500:
		s.log().Error("request error", fields...)
		message = "internal error"
	case status >= 400 && shouldWarnClientError(status):
		s.log().Warn("request rejected", fields...)
	case status >= 400:
		s.log().Debug("request rejected", fields...)
	}
	return message
}

func (s *Server) writeErrorReq(w http.ResponseWriter, r *http.Request, status int, err error) {
	message := s.logError(r, status, err)
	s.writeJSON(w, status, api.ErrorResponse{
		Error:     message,
		Code:      errorCode(status, err),
		ErrorCode: errorNumericCode(status, err),
	})
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorReq(w, r, httpStatusFromError(err), err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

// renderError renders the not found page for 404s and the error page for
// everything else.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromError(err)
	message := s.logError(r, status, err)
	if status >= 500 {
		message = ""
	}

	name := site.TemplateError
	title := "Error"
	if status == http.StatusNotFound {
		name = site.TemplateNotFound
		title = "Page not found"
	}
	s.renderPage(w, r, status, name, site.Page{
		Title: title,
		Data:  site.ErrorData{Status: status, Message: message},
	})
}

// renderPage fills in the shared page fields and writes the template. A
// template failure turns into a plain 500 since nothing has been written yet.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, page site.Page) {
	page.Site = s.siteMeta()
	page.Theme = themeFromContext(r.Context(), s.defaultTheme())
	if page.Path == "" {
		page.Path = r.URL.Path
	}
	if page.Title == "" {
		page.Title = page.Site.Title
	}
	page.Now = s.now()

	var buf bytes.Buffer
	if err := s.templates.Render(&buf, name, page); err != nil {
		s.logError(r, http.StatusInternalServerError, renderFailure(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		s.log().Debug("write page", "path", r.URL.Path, "error", err)
	}
}

func queryIntDefault(r *http.Request, key string, def int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, badRequestCode(fmt.Errorf("invalid %s", key), ErrCodeInvalidQuery)
	}
	if parsed < 0 {
		return 0, badRequestCode(fmt.Errorf("%s must be >= 0", key), ErrCodeInvalidQuery)
	}
	return parsed, nil
}
