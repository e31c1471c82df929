package api

import (
	"fmt"
	"net/http"
)

// Numeric codes carried in ErrorResponse.ErrorCode. The thousands digit is
// the class: 1 validation, 2 content, 3 access, 4 internal.
const (
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidForm     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidQuery    = 1003

	ErrCodeRecordNotFound = 2001
	ErrCodePageNotFound   = 2002

	ErrCodeUnauthorized      = 3001
	ErrCodeResourceExhausted = 3003

	ErrCodeInternal         = 4001
	ErrCodeStoreFailure     = 4002
	ErrCodeContentFailure   = 4003
	ErrCodeRenderFailure    = 4004
	ErrCodeNotImplemented   = 4005
	ErrCodeStoreUnavailable = 4006
)

// ErrorClass groups numeric error codes.
type ErrorClass string

const (
	ClassUnknown    ErrorClass = ""
	ClassValidation ErrorClass = "validation"
	ClassContent    ErrorClass = "content"
	ClassAccess     ErrorClass = "access"
	ClassInternal   ErrorClass = "internal"
)

// ClassOf returns the class of a numeric error code.
func ClassOf(code int) ErrorClass {
	switch code / 1000 {
	case 1:
		return ClassValidation
	case 2:
		return ClassContent
	case 3:
		return ClassAccess
	case 4:
		return ClassInternal
	default:
		return ClassUnknown
	}
}

// APIError is a structured error returned by the site's JSON endpoints.
type APIError struct {
	Status    int
	Code      string
	ErrorCode int
	Message   string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	code := e.Code
	if code != "" && e.ErrorCode > 0 {
		code = fmt.Sprintf("%s (%d)", code, e.ErrorCode)
	}
	if code != "" && e.Message != "" {
		return fmt.Sprintf("%s: %s", code, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Status > 0 {
		return fmt.Sprintf("api error: %d", e.Status)
	}
	return "api error"
}

// Class is the class of the numeric code the site sent.
func (e *APIError) Class() ErrorClass {
	if e == nil {
		return ClassUnknown
	}
	return ClassOf(e.ErrorCode)
}

// ContentUnavailable reports whether the site could not read its content
// trees. Health checks signal this with a bare 503.
func (e *APIError) ContentUnavailable() bool {
	if e == nil {
		return false
	}
	return e.ErrorCode == ErrCodeContentFailure || e.Status == http.StatusServiceUnavailable
}
