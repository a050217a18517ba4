package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrDuplicateKey is returned by store adapters when a uniqueness guard rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Verification code errors.
var (
	ErrAlreadyVerified = errors.New("account already verified")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeMismatch    = errors.New("verification code mismatch")
)

// Sign-in errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// External account link errors.
var (
	ErrNoPendingRequest        = errors.New("no pending link request")
	ErrExternalLookupFailed    = errors.New("external profile lookup failed")
	ErrExternalProfileNotFound = errors.New("external profile not found")
	ErrChallengeNotFound       = errors.New("challenge not found in external profile")
)

// ErrUpstream marks a failure of a hosted dependency other than the profile lookup.
var ErrUpstream = errors.New("upstream failure")
