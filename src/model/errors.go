package model

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when an analysis is attempted with zero source units
var ErrNoInput = errors.New("no supported source files to analyze")

// ErrSessionNotFound is returned for Q&A calls against an unknown session id
var ErrSessionNotFound = errors.New("session not found")

// ErrUnsupportedFile marks files with unrecognized extensions.
// The source provider skips these silently; the value exists so callers
// can distinguish the skip from a read failure.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ExternalServiceError wraps a failed call to the generative-model service.
// The pipeline recovers from it locally (empty extraction, placeholder
// answer); it is never fatal to an analysis run.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed model response. Recovered locally as an
// empty extraction, logged, never surfaced to the caller.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parsing model response: " + e.Reason
}
