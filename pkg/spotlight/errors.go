package spotlight

import (
	"fmt"
	"strings"
)

// requiresRootPhrases are the stderr fragments the Spotlight tools print
// when an operation needs elevated privileges.
var requiresRootPhrases = []string{
	"Operation not permitted",
	"Must be root",
	"requires root privileges",
}

// ValidationError is returned for malformed or mutually-exclusive option
// combinations. It is always raised before any process is spawned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

// ProcessError is returned when a wrapped binary exits non-zero or emits
// stderr output we don't recognize as benign. Callers branch on RequiresRoot
// via errors.As rather than matching strings themselves.
type ProcessError struct {
	Stderr       string
	RequiresRoot bool
	Err          error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("process failed: %s", e.Stderr)
	}

	return fmt.Sprintf("process failed: %v", e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func newProcessError(stderr string, err error) *ProcessError {
	pe := &ProcessError{
		Stderr: strings.TrimSpace(stderr),
		Err:    err,
	}

	for _, phrase := range requiresRootPhrases {
		if strings.Contains(pe.Stderr, phrase) {
			pe.RequiresRoot = true
			break
		}
	}

	return pe
}

// ParseError is returned when expected structured output (e.g. a numeric
// count) cannot be interpreted.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q: %s", e.Input, e.Reason)
}
