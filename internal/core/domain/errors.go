package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent reconciliation failures.
// These are distinct from infrastructure errors.
var (
	// ErrValidation indicates the desired spec is under- or
	// over-specified. Raised before any store interaction.
	ErrValidation = errors.New("invalid desired spec")

	// ErrToolNotFound indicates the uci binary cannot be located.
	ErrToolNotFound = errors.New("uci binary not found")

	// ErrAmbiguousMatch indicates find criteria matched more than one
	// section under MatchError policy.
	ErrAmbiguousMatch = errors.New("find criteria match multiple sections")

	// ErrInvocationFailed indicates a store invocation returned a
	// nonzero status. The remaining sequence is aborted.
	ErrInvocationFailed = errors.New("store invocation failed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// InvocationError reports a failed store invocation with enough context
// to diagnose without re-running: the command, its exit code and
// captured stderr.
type InvocationError struct {
	Command  string
	ExitCode int
	Stderr   string
}

// Error formats the failure with the captured stderr.
func (e *InvocationError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// Unwrap ties the error into the ErrInvocationFailed taxonomy.
func (e *InvocationError) Unwrap() error {
	return ErrInvocationFailed
}
