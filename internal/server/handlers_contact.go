package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"inkwell/internal/metrics"
	"inkwell/internal/models"
	"inkwell/internal/site"
	"inkwell/internal/store"
)

const (
	contactSentPath   = "/contact?sent=1"
	maxUserAgentBytes = 512
)

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	s.renderContact(w, r, http.StatusOK, site.ContactData{
		Sent: r.URL.Query().Get("sent") == "1",
	})
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(defaultFormMaxBody+s.maxMessageBytes()))
	if err := r.ParseForm(); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.renderError(w, r, badRequestCode(fmt.Errorf("request body too large"), ErrCodeRequestTooLarge))
			return
		}
		s.renderError(w, r, badRequestCode(err, ErrCodeInvalidForm))
		return
	}

	form := models.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Company: r.PostFormValue("company"),
		Budget:  r.PostFormValue("budget"),
		Message: r.PostFormValue("message"),
		Website: r.PostFormValue("website"),
	}
	form.Normalize()

	ip := requestClientIP(r)
	if !s.contactLimiter.Allow(ip, s.now()) {
		metrics.RecordContact(metrics.ContactRateLimited)
		s.logError(r, http.StatusTooManyRequests, tooManyRequests(fmt.Errorf("contact rate limit exceeded")))
		w.Header().Set("Retry-After", "60")
		s.renderContact(w, r, http.StatusTooManyRequests, site.ContactData{
			Form:   form,
			Errors: models.FieldErrors{"form": "You have sent several messages in a short time. Please try again in a minute."},
		})
		return
	}

	if form.IsSpam() {
		metrics.RecordContact(metrics.ContactSpam)
		s.log().Info("contact honeypot triggered", "remote_addr", r.RemoteAddr)
		http.Redirect(w, r, contactSentPath, http.StatusSeeOther)
		return
	}

	if errs := models.ValidateContact(form, s.maxMessageBytes()); errs != nil {
		metrics.RecordContact(metrics.ContactInvalid)
		s.log().Debug("contact form rejected", "fields", errs.Error())
		s.renderContact(w, r, http.StatusUnprocessableEntity, site.ContactData{Form: form, Errors: errs})
		return
	}

	if s.store == nil {
		metrics.RecordContact(metrics.ContactFailed)
		s.renderError(w, r, makeHTTPError(http.StatusInternalServerError, "internal", ErrCodeStoreUnavailable, fmt.Errorf("contact store is not configured")))
		return
	}

	id, err := store.GenerateMessageID()
	if err != nil {
		metrics.RecordContact(metrics.ContactFailed)
		s.renderError(w, r, storeFailure(err))
		return
	}
	msg := &models.ContactMessage{
		ID:         id,
		Name:       form.Name,
		Email:      form.Email,
		Company:    form.Company,
		Budget:     form.Budget,
		Message:    form.Message,
		RemoteAddr: ip,
		UserAgent:  truncate(r.UserAgent(), maxUserAgentBytes),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.CreateMessage(r.Context(), msg); err != nil {
		metrics.RecordContact(metrics.ContactFailed)
		s.renderError(w, r, storeFailure(err))
		return
	}

	metrics.RecordContact(metrics.ContactAccepted)
	s.log().Info("contact message stored", "id", msg.ID)
	http.Redirect(w, r, contactSentPath, http.StatusSeeOther)
}

func (s *Server) renderContact(w http.ResponseWriter, r *http.Request, status int, data site.ContactData) {
	data.Budgets = models.BudgetOptions
	s.renderPage(w, r, status, site.TemplateContact, site.Page{
		Title:       "Contact",
		Description: "Tell us about your project.",
		Path:        "/contact",
		Data:        data,
	})
}

func requestClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remote)
	if err == nil {
		return strings.TrimSpace(host)
	}
	return remote
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return strings.ToValidUTF8(value[:limit], "")
}
