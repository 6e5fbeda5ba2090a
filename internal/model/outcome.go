// Package model defines the core data types shared by cargo-clicker's processes.
package model

import (
	"errors"
	"fmt"
)

// Outcome classifies a delegated run as a success or a failure.
// Its textual form crosses a process boundary, so String and ParseOutcome
// must stay exact inverses.
type Outcome int

const (
	Positive Outcome = iota
	Negative
)

// ErrUnknownOutcome is returned when a string is not a valid Outcome.
var ErrUnknownOutcome = errors.New("unknown outcome")

// Outcomes lists every Outcome in declaration order.
var Outcomes = []Outcome{Positive, Negative}

// String returns "Positive" or "Negative".
func (o Outcome) String() string {
	switch o {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ParseOutcome parses the exact textual form produced by String.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "Positive":
		return Positive, nil
	case "Negative":
		return Negative, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}

// OutcomeFromExitCode maps a process exit code to an Outcome.
func OutcomeFromExitCode(code int) Outcome {
	if code == 0 {
		return Positive
	}
	return Negative
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case Positive, Negative:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOutcome, int(o))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
