// Package errors defines the failure kinds a harness case can end with.
//
// Every component wraps one of the sentinel errors below so the sequencer can
// classify a failed case without knowing which component produced it.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// Sentinel failure kinds.
var (
	ErrFixtureNotFound = stderrors.New("fixture not found")
	ErrMalformedRow    = stderrors.New("malformed fixture row")
	ErrRequestTimeout  = stderrors.New("request timed out")
	ErrConnection      = stderrors.New("connection error")
	ErrValidation      = stderrors.New("validation failure")
)

// Kind is the stable, machine readable name of a failure kind.
type Kind string

const (
	KindNone            Kind = ""
	KindFixtureNotFound Kind = "fixture_not_found"
	KindMalformedRow    Kind = "malformed_row"
	KindRequestTimeout  Kind = "request_timeout"
	KindConnection      Kind = "connection_error"
	KindValidation      Kind = "validation_failure"
	KindUnknown         Kind = "unknown"
)

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case stderrors.Is(err, ErrFixtureNotFound):
		return KindFixtureNotFound
	case stderrors.Is(err, ErrMalformedRow):
		return KindMalformedRow
	case stderrors.Is(err, ErrRequestTimeout):
		return KindRequestTimeout
	case stderrors.Is(err, ErrConnection):
		return KindConnection
	case stderrors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindUnknown
	}
}

// FixtureNotFoundError reports a fixture path that does not exist.
type FixtureNotFoundError struct {
	Path string
	Err  error
}

func (e *FixtureNotFoundError) Error() string {
	return fmt.Sprintf("fixture %q not found", e.Path)
}

// Is matches both ErrFixtureNotFound and fs.ErrNotExist.
func (e *FixtureNotFoundError) Is(target error) bool {
	return target == ErrFixtureNotFound || target == fs.ErrNotExist
}

func (e *FixtureNotFoundError) Unwrap() error { return e.Err }

// MalformedRowError reports a fixture line that cannot be turned into a pet.
type MalformedRowError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *MalformedRowError) Error() string {
	msg := fmt.Sprintf("line %d", e.Line)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field %s=%q", msg, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedRow, msg, e.Reason)
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Method string
	URL    string
	Kind   error // ErrRequestTimeout or ErrConnection
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{e.Kind, e.Err} }

// ValidationFailure reports the first response field that did not match.
type ValidationFailure struct {
	Field    string
	Expected any
	Actual   any
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("%s: %s: expected %v, got %v", ErrValidation, e.Field, format(e.Expected), format(e.Actual))
}

func (e *ValidationFailure) Unwrap() error { return ErrValidation }

func format(v any) string {
	switch val := v.(type) {
	case nil:
		return "<missing>"
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
