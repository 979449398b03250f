// Package wserr defines the error taxonomy shared by the transport, codec
// and socket layers.
package wserr

import (
	"errors"
	"fmt"
)

// Kind classifies transport errors.
type Kind uint8

const (
	// KindEncoding indicates payload serialization failed.
	KindEncoding Kind = iota

	// KindDecoding indicates payload deserialization failed.
	KindDecoding

	// KindInvalidPayload indicates a frame arrived in an unexpected kind
	// for the active codec.
	KindInvalidPayload

	// KindClosed indicates an operation was attempted after the transport
	// ended.
	KindClosed

	// KindTransport wraps a native I/O error from the underlying
	// connection.
	KindTransport

	// KindInternal indicates an unexpected queue or bridging failure.
	KindInternal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "encoding failed"
	case KindDecoding:
		return "decoding failed"
	case KindInvalidPayload:
		return "invalid payload"
	case KindClosed:
		return "transport is closed"
	case KindTransport:
		return "transport error"
	case KindInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is a classified transport error, optionally wrapping a cause.
type Error struct {
	Kind Kind
	Err  error
}

// ErrClosed is returned for operations attempted after the transport
// ended. Compare with errors.Is.
var ErrClosed = &Error{Kind: KindClosed}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality, so sentinel comparisons like
// errors.Is(err, wserr.ErrClosed) match any error of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// Encoding wraps err as a payload serialization failure.
func Encoding(err error) *Error {
	return &Error{Kind: KindEncoding, Err: err}
}

// Decoding wraps err as a payload deserialization failure.
func Decoding(err error) *Error {
	return &Error{Kind: KindDecoding, Err: err}
}

// InvalidPayload wraps err as a frame-kind mismatch for the active codec.
func InvalidPayload(err error) *Error {
	return &Error{Kind: KindInvalidPayload, Err: err}
}

// Transport wraps a native I/O error.
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

// Internal wraps an unexpected bridging failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// KindOf returns the kind of err if it is (or wraps) an *Error. The
// second return is false for unclassified errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
