/*
DESCRIPTION
  errs.go provides the structured error kinds returned across the tlc-core
  public surface, so callers can distinguish failure classes with
  errors.As instead of matching on message text.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package errs defines the structured error kinds shared by every tlc-core
// component: Unset, InvalidParam, Decode, IO, Aborted and Cancelled.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error into one of the six failure classes the core
// exposes to its caller.
type Kind int

const (
	// Unset indicates a required leaf has not been set yet.
	Unset Kind = iota
	// InvalidParam indicates a validation rule rejected a mutation.
	InvalidParam
	// Decode indicates a codec error, or the one-packet-one-frame
	// invariant was violated.
	Decode
	// IO indicates a file was not found or unreadable.
	IO
	// Aborted indicates a cancellation flag was raised mid-computation.
	Aborted
	// Cancelled indicates a preview request was evicted before serving.
	Cancelled
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Unset:
		return "unset"
	case InvalidParam:
		return "invalid param"
	case Decode:
		return "decode"
	case IO:
		return "io"
	case Aborted:
		return "aborted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned across the public surface. It
// carries a Kind, a human-readable message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New returns a new *Error of the given kind with no wrapped cause.
func New(k Kind, message string) *Error {
	return &Error{Kind: k, Message: message}
}

// Wrap returns a new *Error of the given kind wrapping cause.
func Wrap(k Kind, message string, cause error) *Error {
	return &Error{Kind: k, Message: message, Cause: cause}
}

// Error implements the error interface. The message is intended to be
// rendered verbatim by the frontend.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, allowing
// errors.Is(err, errs.New(errs.Unset, "")) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
}
