// Package apperrors defines the error taxonomy shared by services and
// controllers. Services wrap these sentinels with %w; controllers map them
// to HTTP statuses with Status.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInference        = errors.New("inference failed")
	ErrStore            = errors.New("store failure")
)

// Status maps an error to its HTTP status code. Each error kind gets a
// distinct, stable status so clients can branch on "not authenticated" vs
// "not yours" vs "doesn't exist".
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInference):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
