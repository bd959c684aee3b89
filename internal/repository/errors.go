package repository

import "errors"

// Error taxonomy shared by all adapters. Use cases classify failures with
// errors.Is against these sentinels.
var (
	// ErrInvalidInput marks a malformed target URL or request payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration marks a missing or unusable secret detected at
	// construction time, before any network call is attempted.
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstream marks a transient provider or network failure that is
	// retryable per the calling component's policy.
	ErrUpstream = errors.New("upstream error")

	// ErrQuotaExhausted marks the terminal rendering-proxy condition:
	// no further proxy calls will succeed until quota resets. Never retried.
	ErrQuotaExhausted = errors.New("rendering quota exhausted")

	// ErrGenerationRefused marks a non-retryable generation failure,
	// e.g. a malformed or rejected request.
	ErrGenerationRefused = errors.New("generation refused")
)
