// Package xerr defines the typed error kinds the core surfaces to callers.
package xerr

import (
	"errors"
	"fmt"

	xerrors "github.com/mdobak/go-xerrors"
)

// Kind identifies one of the error categories the core can return.
type Kind string

const (
	// InvalidInput covers empty waveforms, non-finite samples, or a
	// target rate above half the source rate.
	InvalidInput Kind = "invalid_input"
	// TooShort means fewer than one complete STFT frame survived decimation.
	TooShort Kind = "too_short"
	// IndexCorrupt means a database file failed its magic/length checks.
	IndexCorrupt Kind = "index_corrupt"
	// IndexIOError wraps an underlying read/write failure.
	IndexIOError Kind = "index_io_error"
	// NoMatch reports that identification produced no qualifying candidate.
	NoMatch Kind = "no_match"
	// Ambiguous reports that the top two candidates were within margin.
	Ambiguous Kind = "ambiguous"
)

// Error wraps an underlying cause with a Kind so callers can switch on it
// with errors.As without string-matching messages.
type Error struct {
	kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return string(e.kind)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Kind reports the error's category.
func (e *Error) Kind() Kind { return e.kind }

// New builds an *Error of the given kind carrying msg as its message.
func New(kind Kind, msg string) error {
	return &Error{kind: kind, cause: xerrors.New(msg)}
}

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, cause: xerrors.New(fmt.Sprintf(format, args...))}
}

// Wrap attaches a kind to an existing error, preserving it as the cause.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, cause: err}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}

// KindOf extracts the Kind of err, or "" if err isn't a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}
