package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Attempt records one failed candidate load during source resolution.
type Attempt struct {
	Dataset string
	Config  string
	Reason  string
}

// ID returns the provider-side identifier of the attempted candidate.
func (a Attempt) ID() string {
	if a.Config == "" {
		return a.Dataset
	}
	return a.Dataset + "/" + a.Config
}

// SourceUnavailableError is returned when every candidate identifier for
// a logical source failed to load. It carries the full ordered list of
// attempts so operators can see exactly which mirror names were tried.
type SourceUnavailableError struct {
	Source   string
	Attempts []Attempt
}

func (e *SourceUnavailableError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "source %q unavailable after %d candidate(s):", e.Source, len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, "\n  - %s: %s", a.ID(), a.Reason)
	}
	return sb.String()
}

// NewSourceUnavailableError creates a SourceUnavailableError for the given
// logical source and its failed attempts.
func NewSourceUnavailableError(source string, attempts []Attempt) *SourceUnavailableError {
	return &SourceUnavailableError{Source: source, Attempts: attempts}
}

// IsSourceUnavailableError reports whether err is a SourceUnavailableError
// (even when wrapped).
func IsSourceUnavailableError(err error) bool {
	var sourceErr *SourceUnavailableError
	return errors.As(err, &sourceErr)
}
