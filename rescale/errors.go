package rescale

import (
	"errors"
	"fmt"
)

var (
	// ErrNonFinite is wrapped by RescaleError when value*k is not a finite float64.
	ErrNonFinite = errors.New("rescaled value is not finite")
	// ErrInvalidFactor is returned when basis points do not yield a finite factor.
	ErrInvalidFactor = errors.New("invalid basis points")
)

// ParseError reports a non-blank input line that is not a single valid JSON document.
type ParseError struct {
	Line int64 // 1-based physical line number, 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid JSON: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failure to open, read, create, write or commit a stream.
type IOError struct {
	Op   string // "open", "read", "create", "write", "commit"
	Path string // may be empty for anonymous streams
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// RescaleError reports a price field that could not be rescaled.
type RescaleError struct {
	Line int64
	Key  string
	Err  error
}

func (e *RescaleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: field %q: %v", e.Line, e.Key, e.Err)
	}

	return fmt.Sprintf("field %q: %v", e.Key, e.Err)
}

func (e *RescaleError) Unwrap() error { return e.Err }

// withLine stamps the line number on errors that carry one.
func withLine(err error, line int64) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line == 0 {
		pe.Line = line
	}
	var re *RescaleError
	if errors.As(err, &re) && re.Line == 0 {
		re.Line = line
	}

	return err
}
