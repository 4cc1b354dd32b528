package dataset

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by LoadError.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformed     = errors.New("malformed data")
	ErrEmpty         = errors.New("dataset is empty")
)

// LoadError reports why a dataset source could not be loaded.
type LoadError struct {
	Source string
	Line   int
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s", e.Source)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(source string, line int, reason string, err error) *LoadError {
	return &LoadError{Source: source, Line: line, Reason: reason, Err: err}
}
