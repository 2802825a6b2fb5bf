package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRosterFormat  = errors.New("roster format error")
	ErrFileRead      = errors.New("file read error")
	ErrMissingInput  = errors.New("missing input")
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Severity describes how the CLI should surface an error.
type Severity int

const (
	// SeverityFatal halts the run and prints a single error line.
	SeverityFatal Severity = iota
	// SeverityDegraded is logged per item; the run continues.
	SeverityDegraded
	// SeverityWaiting means an input has not been supplied yet.
	SeverityWaiting
)

// SeverityOf maps an error to the way the run should react to it.
func SeverityOf(err error) Severity {
	switch {
	case errors.Is(err, ErrMissingInput):
		return SeverityWaiting
	case errors.Is(err, ErrFileRead):
		return SeverityDegraded
	default:
		return SeverityFatal
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
