package conversion

import (
	"errors"
	"fmt"
)

// FailureKind classifies terminal job failures by the step that produced
// them. Remote-library and network errors are mapped into exactly one kind at
// the boundary where they occur.
type FailureKind string

const (
	FailureInvalidSource            FailureKind = "invalid_source"
	FailureSourceUnavailable        FailureKind = "source_unavailable"
	FailureAuthenticationFailed     FailureKind = "authentication_failed"
	FailureUploadVerificationFailed FailureKind = "upload_verification_failed"
	FailureResultUnavailable        FailureKind = "result_unavailable"
	FailurePersistFailed            FailureKind = "persist_failed"
	FailureInternal                 FailureKind = "internal"
)

// JobError is a terminal orchestration failure tagged with the step's
// failure kind. Per-unit transform failures are never JobErrors; they are
// recorded on the job and do not abort it.
type JobError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *JobError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// NewJobError creates a terminal job failure for the given kind.
func NewJobError(kind FailureKind, message string, err error) *JobError {
	return &JobError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the failure kind from an error, defaulting to
// FailureInternal for unexpected errors.
func KindOf(err error) FailureKind {
	var jobErr *JobError
	if errors.As(err, &jobErr) {
		return jobErr.Kind
	}
	return FailureInternal
}

// IsTerminalClientError reports whether the failure is a 400-class rejection
// rather than a server-side fault.
func IsTerminalClientError(err error) bool {
	return KindOf(err) == FailureInvalidSource
}
