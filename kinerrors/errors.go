// Package kinerrors defines the failure taxonomy surfaced by the bridge.
//
// Every error returned from the public operation surface is an *Error with a Kind, so a host
// application can branch on the kind (errors.Is(err, kinerrors.ErrPeerNotFound)) without parsing
// messages. The message keeps as much detail from the failing layer as is available.
package kinerrors

import (
	"errors"
	"fmt"
)

// Kind identifies which class of failure an Error belongs to.
type Kind string

const (
	Configuration   Kind = "configuration"
	Precondition    Kind = "precondition"
	Validation      Kind = "validation"
	Signing         Kind = "signing"
	PeerNotFound    Kind = "peer_not_found"
	NativeOperation Kind = "native_operation"
)

// Sentinels for errors.Is comparisons; they match any Error of the same kind.
var (
	ErrConfiguration   = &Error{Kind: Configuration}
	ErrPrecondition    = &Error{Kind: Precondition}
	ErrValidation      = &Error{Kind: Validation}
	ErrSigning         = &Error{Kind: Signing}
	ErrPeerNotFound    = &Error{Kind: PeerNotFound}
	ErrNativeOperation = &Error{Kind: NativeOperation}
)

// Error is the base error type for all bridge failures.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Cause != nil:
		return e.Cause.Error()
	case e.Message == "":
		return string(e.Kind)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying cause, enabling error chain inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok || other == nil {
		return false
	}
	return e.Kind == other.Kind
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies cause under kind. An existing *Error in the chain keeps its own kind
// so the first classification wins.
func Wrap(kind Kind, cause error, message string) error {
	if cause == nil {
		return nil
	}
	var existing *Error
	if errors.As(cause, &existing) {
		if message == "" {
			return cause
		}
		return &Error{Kind: existing.Kind, Message: message, Cause: cause}
	}
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
