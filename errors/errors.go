// Package errors provides error handling for entmirror.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//
// Usage:
//
//	// Wrap with context
//	if err := loadIndex(); err != nil {
//	    return errors.Wrap(err, "failed to load entity sources")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'entmirror init' to create a config file")
//
//	// Classify
//	if errors.Is(err, errors.ErrInput) {
//	    // a source file, entity name or inheritance chain is wrong
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Error classes of a generator run. Typed errors unwrap to one of these so
// callers can classify with errors.Is without knowing the concrete type.
var (
	// ErrInput marks problems in the entity sources themselves: unreadable or
	// unparsable files, duplicate entity names, cyclic or ambiguous inheritance.
	ErrInput = New("invalid entity input")

	// ErrEnvironment marks problems found before any source is processed:
	// missing or malformed configuration, no go.mod, package listing failures.
	ErrEnvironment = New("invalid environment")

	// ErrOutOfDate is returned by the check command when the mirror on disk
	// differs from what the current sources would generate.
	ErrOutOfDate = New("generated declarations are out of date")
)

// WrapEnvironment marks err as an environment error and adds context.
func WrapEnvironment(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrEnvironment)
}

// NewEnvironmentError creates an environment error with a formatted message.
func NewEnvironmentError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrEnvironment)
}

// IsInputError reports whether err is or wraps ErrInput.
func IsInputError(err error) bool {
	return err != nil && Is(err, ErrInput)
}

// IsEnvironmentError reports whether err is or wraps ErrEnvironment.
func IsEnvironmentError(err error) bool {
	return err != nil && Is(err, ErrEnvironment)
}
