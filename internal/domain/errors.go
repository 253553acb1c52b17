package domain

import (
	"errors"
	"net/http"
)

// Closed set of failure kinds used across client and server. Callers match
// with errors.Is; wrap with fmt.Errorf("...: %w", kind) to add detail.
// Kinds map to HTTP-equivalent statuses only at the wire boundary.
var (
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrAuth         = errors.New("authentication failed")
	ErrUnauthorized = errors.New("please login")
	ErrCrypto       = errors.New("crypto failure")
	ErrStorage      = errors.New("storage failure")
)

// StatusOf maps an error to its HTTP-equivalent status code.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrCrypto):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAuth):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// KindForStatus is the reverse mapping used by the relay client to turn a
// response envelope back into a typed failure. 403 comes back as ErrAuth;
// the client only branches on 401.
func KindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrStorage
	}
}
