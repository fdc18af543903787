package entitlement

import "errors"

var (
	// ErrMissingUserID is returned when a caller supplies no user identity.
	ErrMissingUserID = errors.New("user id is required")

	// ErrInsufficientCredits is returned when a deduction exceeds the
	// remaining balance.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrStorageUnavailable wraps data-store failures during resolution. No
	// partial or cached snapshot is returned in that case.
	ErrStorageUnavailable = errors.New("entitlement store unavailable")
)
