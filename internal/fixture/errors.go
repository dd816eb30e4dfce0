package fixture

import (
	"errors"
	"fmt"
)

var (
	ErrNameNotRecognized = errors.New("team name not recognised")
	ErrOddsFormat        = errors.New("malformed odds fraction")
	ErrDateFormat        = errors.New("malformed date")
	ErrUnknownMonth      = errors.New("unknown month")
	ErrTimeFormat        = errors.New("malformed kickoff time")
	ErrScoreFormat       = errors.New("malformed score")
	ErrFieldNotSet       = errors.New("field not set")
)

// Side identifies the home or away team of a fixture.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// NameError reports a team name that is not in the league table.
type NameError struct {
	Side Side
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s team (%s) not recognised", e.Side, e.Name)
}

func (e *NameError) Unwrap() error { return ErrNameNotRecognized }

// ParseError reports a raw value that could not be converted. Kind is one of
// the package sentinels; Part names the component that failed (for example
// "numerator" or "month") and Value holds the offending text.
type ParseError struct {
	Kind  error
	Part  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v: %s %q", e.Kind, e.Part, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func parseError(kind error, part, value string, err error) error {
	return &ParseError{Kind: kind, Part: part, Value: value, Err: err}
}

// FieldError reports a read of an optional field that was never assigned.
type FieldError struct {
	UID   string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %v", e.UID, e.Field, ErrFieldNotSet)
}

func (e *FieldError) Unwrap() error { return ErrFieldNotSet }
