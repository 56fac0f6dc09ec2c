// Package validation defines the structured errors returned when a token
// vector does not satisfy a grammar. Each error carries a help document
// rather than a raw message, so that callers can render it in any mode.
package validation

import (
	"errors"
	"strings"

	"github.com/reeflective/grammar/help"
)

// Kind classifies a validation failure.
type Kind int

// ORDER IN WHICH THE KIND CONSTANTS APPEAR MATTERS.
const (
	// MissingValue indicates that a required flag or value is absent.
	// It is the only kind recoverable by defaults.
	MissingValue Kind = iota

	// InvalidValue indicates that a value is present but malformed,
	// or that mutually exclusive options were both given.
	InvalidValue

	// CorrectedFlag indicates a likely typo of a known flag name.
	CorrectedFlag

	// CommandMismatch indicates an unexpected command name.
	CommandMismatch

	// MissingSubcommand indicates that a parent command matched
	// but no subcommand was given.
	MissingSubcommand
)

// Sentinel errors matching each kind with errors.Is.
var (
	ErrMissingValue      = errors.New("missing value")
	ErrInvalidValue      = errors.New("invalid value")
	ErrCorrectedFlag     = errors.New("unrecognized flag")
	ErrCommandMismatch   = errors.New("command mismatch")
	ErrMissingSubcommand = errors.New("missing subcommand")
)

func (k Kind) sentinel() error {
	sentinels := [...]error{
		ErrMissingValue,      // MissingValue
		ErrInvalidValue,      // InvalidValue
		ErrCorrectedFlag,     // CorrectedFlag
		ErrCommandMismatch,   // CommandMismatch
		ErrMissingSubcommand, // MissingSubcommand
	}
	if int(k) < 0 || int(k) >= len(sentinels) {
		return nil
	}

	return sentinels[k]
}

// String returns a short name for the kind.
func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}

	return "unknown"
}

// Error is a validation failure. The error returned from
// any grammar validation is either of this type, or a fatal
// error that aborts parsing altogether.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Doc explains the failure to the user.
	Doc help.Doc
}

// Error returns the plain-text rendering of the error document.
func (e *Error) Error() string {
	return strings.TrimSpace(help.Render(e.Doc, help.Plain))
}

// Is matches the sentinel error of the error's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// New returns a validation error of the given kind.
func New(kind Kind, doc help.Doc) *Error {
	return &Error{Kind: kind, Doc: doc}
}

// Newf returns a validation error whose document is
// a single paragraph, styled as an error.
func Newf(kind Kind, spans ...help.Span) *Error {
	return New(kind, help.P(help.Error(spans...)))
}

// Missing returns a MissingValue error with a plain message.
func Missing(msg string) *Error { return Newf(MissingValue, help.Text(msg)) }

// Invalid returns an InvalidValue error with a plain message.
func Invalid(msg string) *Error { return Newf(InvalidValue, help.Text(msg)) }

// As returns the validation error held by err, if any.
func As(err error) (*Error, bool) {
	var verr *Error
	ok := errors.As(err, &verr)

	return verr, ok
}

// IsMissing reports whether err is a MissingValue validation error.
func IsMissing(err error) bool {
	verr, ok := As(err)

	return ok && verr.Kind == MissingValue
}

// Merge combines two errors' documents into a single error of the given kind.
func Merge(kind Kind, left, right *Error) *Error {
	return New(kind, help.Sequence(left.Doc, right.Doc))
}
