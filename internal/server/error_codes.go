package server

import "inkwell/internal/api"

// Error codes shared with the API client.
const (
	ErrCodeInvalidArgument = api.ErrCodeInvalidArgument
	ErrCodeInvalidForm     = api.ErrCodeInvalidForm
	ErrCodeRequestTooLarge = api.ErrCodeRequestTooLarge
	ErrCodeInvalidQuery    = api.ErrCodeInvalidQuery

	ErrCodeRecordNotFound = api.ErrCodeRecordNotFound
	ErrCodePageNotFound   = api.ErrCodePageNotFound

	ErrCodeUnauthorized      = api.ErrCodeUnauthorized
	ErrCodeResourceExhausted = api.ErrCodeResourceExhausted

	ErrCodeInternal         = api.ErrCodeInternal
	ErrCodeStoreFailure     = api.ErrCodeStoreFailure
	ErrCodeContentFailure   = api.ErrCodeContentFailure
	ErrCodeRenderFailure    = api.ErrCodeRenderFailure
	ErrCodeNotImplemented   = api.ErrCodeNotImplemented
	ErrCodeStoreUnavailable = api.ErrCodeStoreUnavailable
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 404:
		return ErrCodePageNotFound
	case 422:
		return ErrCodeInvalidForm
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	case 501:
		return ErrCodeNotImplemented
	default:
		return 0
	}
}
