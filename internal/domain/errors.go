package domain

import "errors"

// Error taxonomy for one search. Only ErrInvalidTimeFormat and
// ErrInvalidPartySize are request-fatal; everything else degrades a single
// category and is surfaced through its CategoryStatus.
var (
	// ErrInvalidTimeFormat means the user-supplied target time does not match
	// the 12-hour clock pattern. Raised before any network call.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidPartySize means the party size is outside 1..10.
	ErrInvalidPartySize = errors.New("party size out of range")

	// ErrNonRetryableHTTP means the upstream answered with a non-transient
	// error status. Retrying will not help.
	ErrNonRetryableHTTP = errors.New("non-retryable upstream status")

	// ErrMalformedResponse means the upstream body was not valid JSON or was
	// missing required top-level fields. Not retried: a structurally wrong
	// response will not fix itself.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrExhaustedRetries means every attempt hit a transient failure. Callers
	// must not conflate this with a legitimate empty page set.
	ErrExhaustedRetries = errors.New("retry attempts exhausted")
)
