// Package merr defines the fatal error kinds raised while building a Model
// from MEF input, matching the taxonomy in the initializer's error surface.
package merr

import (
	"fmt"
	"strings"
)

// IOError reports a missing input file.
type IOError struct {
	Msg string
}

func (e *IOError) Error() string { return e.Msg }

// DuplicateArgumentError reports two things that were supposed to be
// distinct but collided: input file paths, CCF member names, and similar.
type DuplicateArgumentError struct {
	Msg string
}

func (e *DuplicateArgumentError) Error() string { return e.Msg }

// ValidationError is the umbrella error for schema failures, undefined
// references, arity mismatches, invalid attribute values, unit mismatches,
// missing required bodies, and aggregated basic-event/CCF failures.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// WithLocation prepends "line N: " to msg. Use at the raise site closest to
// the offending XML node.
func WithLocation(line int, msg string) string {
	if line <= 0 {
		return msg
	}
	return fmt.Sprintf("line %d: %s", line, msg)
}

// WithFile prepends "in file 'path', " to msg, applied by the layer that
// knows which file is currently being processed.
func WithFile(path, msg string) string {
	return fmt.Sprintf("in file '%s', %s", path, msg)
}

// Validation constructs a *ValidationError from a location-prefixed message.
func Validation(line int, format string, args ...any) *ValidationError {
	return &ValidationError{Msg: WithLocation(line, fmt.Sprintf(format, args...))}
}

// WrapFile prepends the currently processed file's path to err's message,
// preserving err's concrete type so callers further up can still type-switch
// on it.
func WrapFile(path string, err error) error {
	switch e := err.(type) {
	case *ValidationError:
		return &ValidationError{Msg: WithFile(path, e.Msg)}
	case *DuplicateArgumentError:
		return &DuplicateArgumentError{Msg: WithFile(path, e.Msg)}
	case *CycleError:
		return &CycleError{Msg: WithFile(path, e.Msg)}
	case *IOError:
		return &IOError{Msg: WithFile(path, e.Msg)}
	default:
		return err
	}
}

// CycleError reports a detected cycle in gates, parameters, or branches.
type CycleError struct {
	Msg string
}

func (e *CycleError) Error() string { return e.Msg }

// InvalidArgument is an error kind for out-of-domain numeric inputs.
// Nothing in this module constructs it; the expression builder reports
// such inputs directly as ValidationError with the XML line attached.
type InvalidArgument struct {
	Msg string
}

func (e *InvalidArgument) Error() string { return e.Msg }

// MultiError aggregates one message per offending element for the
// aggregation steps of validation (missing probabilities, CCF group
// failures, basic-event probability ranges). It formats as a single
// ValidationError-compatible message once flushed.
type MultiError struct {
	header string
	lines  []string
}

// NewMultiError starts an aggregator that will report under header if any
// line is ever added.
func NewMultiError(header string) *MultiError {
	return &MultiError{header: header}
}

// Add appends one failure line to the aggregator.
func (m *MultiError) Add(line string) {
	m.lines = append(m.lines, line)
}

// Len reports how many failures have been recorded so far.
func (m *MultiError) Len() int { return len(m.lines) }

// Err returns a combined *ValidationError if any lines were added, or nil.
func (m *MultiError) Err() error {
	if len(m.lines) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(m.header)
	b.WriteString(":\n")
	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return &ValidationError{Msg: b.String()}
}
