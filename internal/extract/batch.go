package extract

import (
	"errors"
	"fmt"
)

// ErrCountMismatch marks a batch whose sequences do not line up.
var ErrCountMismatch = errors.New("count mismatch")

// CountError reports a sequence whose length differs from the home names.
type CountError struct {
	Field string
	Got   int
	Want  int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%s count mismatch: got %d, want %d", e.Field, e.Got, e.Want)
}

func (e *CountError) Unwrap() error { return ErrCountMismatch }

// Batch holds the raw strings captured from one document. Index i of every
// non-empty sequence belongs to the i-th match.
type Batch struct {
	Home     []string
	Away     []string
	Dates    []string
	Kickoffs []string
	Scores   []string
}

// Len returns the number of matches seen, counted by home names.
func (b *Batch) Len() int { return len(b.Home) }

// Check verifies sequence alignment. Away names must always match the home
// count; the optional sequences only when non-empty. Every mismatch is
// reported.
func (b *Batch) Check() error {
	want := len(b.Home)
	var errs []error
	if len(b.Away) != want {
		errs = append(errs, &CountError{Field: "away", Got: len(b.Away), Want: want})
	}
	optional := []struct {
		field string
		n     int
	}{
		{"date", len(b.Dates)},
		{"kickoff", len(b.Kickoffs)},
		{"score", len(b.Scores)},
	}
	for _, o := range optional {
		if o.n != 0 && o.n != want {
			errs = append(errs, &CountError{Field: o.field, Got: o.n, Want: want})
		}
	}
	return errors.Join(errs...)
}
