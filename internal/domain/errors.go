package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrUnsupportedMethod = errors.New("verification method not supported")
	ErrDeliveryFailure   = errors.New("delivery failure")
)
