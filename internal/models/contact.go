package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ContactMessage is one stored contact form submission.
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company,omitempty"`
	Budget     string    `json:"budget,omitempty"`
	Message    string    `json:"message"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContactForm is the contact form as posted by a visitor.
type ContactForm struct {
	Name    string `form:"name" validate:"required,max=120"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Company string `form:"company" validate:"max=120"`
	Budget  string `form:"budget" validate:"omitempty,oneof=under-10k 10k-50k 50k-100k over-100k"`
	Message string `form:"message" validate:"required,min=10"`
	// Website is a honeypot; people never see the field.
	Website string `form:"website"`
}

// BudgetOptions lists the accepted budget values in display order.
var BudgetOptions = []string{"under-10k", "10k-50k", "50k-100k", "over-100k"}

// FieldErrors maps form field names to a human readable message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}

var contactValidator = newContactValidator()

func newContactValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize trims every field.
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Company = strings.TrimSpace(f.Company)
	f.Budget = strings.TrimSpace(f.Budget)
	f.Message = strings.TrimSpace(f.Message)
	f.Website = strings.TrimSpace(f.Website)
}

// IsSpam reports whether the honeypot field was filled in.
func (f ContactForm) IsSpam() bool {
	return f.Website != ""
}

// ValidateContact checks a normalized form. A nil result means the form is valid.
func ValidateContact(form ContactForm, maxMessageBytes int) FieldErrors {
	out := FieldErrors{}
	if err := contactValidator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			out["form"] = err.Error()
			return out
		}
		for _, fe := range verrs {
			out[fe.Field()] = contactFieldMessage(fe)
		}
	}
	if _, ok := out["message"]; !ok && maxMessageBytes > 0 && len(form.Message) > maxMessageBytes {
		out["message"] = fmt.Sprintf("must be at most %d bytes", maxMessageBytes)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func contactFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return "is not one of the listed options"
	default:
		return "is invalid"
	}
}
