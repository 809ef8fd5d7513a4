package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoData indicates a registry answered without usable data.
	ErrNoData = errors.New("no data")

	// ErrUpstream indicates a registry request failed at the transport or
	// HTTP level. The fetch engine degrades these to empty pages.
	ErrUpstream = errors.New("upstream request failed")

	// ErrPhaseUnavailable indicates a fetch phase was driven against a
	// registry that has no endpoint for it.
	ErrPhaseUnavailable = errors.New("phase unavailable")

	// ErrRateLimited indicates a registry rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthRequired indicates a registry needs credentials but none are
	// configured.
	ErrAuthRequired = errors.New("authentication required")
)
