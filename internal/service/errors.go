package service

import "errors"

// Error taxonomy shared by all services. Handlers map these onto HTTP
// statuses; anything unwrapped is a 500.
var (
	// ErrInvalidInput marks a request missing required fields or carrying
	// values that cannot be parsed (bad dates, empty title).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers both genuinely absent rows and rows the caller is
	// not allowed to see. Private recipes are reported as not-found so the
	// response never leaks their existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a mutation attempted by a non-owner. The store is
	// left untouched whenever this is returned.
	ErrForbidden = errors.New("forbidden")

	// ErrModelLoading means the generation upstream answered 503; the
	// caller should surface a retry message and write nothing.
	ErrModelLoading = errors.New("model is loading")

	// ErrUpstream covers every other generation upstream failure.
	ErrUpstream = errors.New("upstream service error")
)
