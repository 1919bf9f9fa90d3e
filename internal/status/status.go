package status

import "errors"

var (
	ErrSourceUnavailable = errors.New("event source: provider not available")
	ErrRead              = errors.New("event source: read failed")
	ErrEmptyResult       = errors.New("event source: no usable events")
	ErrCircuitOpen       = errors.New("event source: circuit breaker is open")
	ErrTooManyRequests   = errors.New("event source: too many requests while half open")
)

var (
	ErrIncompleteStep     = errors.New("organizer request: required fields missing")
	ErrAgreementsRequired = errors.New("organizer request: all agreements must be accepted")
	ErrRequestNotFound    = errors.New("organizer request: request not found")
	ErrInvalidTransition  = errors.New("organizer request: status change not allowed")
	ErrEmptyMessage       = errors.New("organizer request: message must not be empty")
)
