// Package reconcile merges a flat odds listing into fixture records by
// matching team-name text.
package reconcile

import (
	"errors"
	"fmt"

	"matchday/internal/fixture"
)

// GroupSize is the number of listing entries per match: home, draw, away.
const GroupSize = 3

// ErrInsufficientData marks a listing too short to be a full round.
var ErrInsufficientData = errors.New("insufficient odds data")

// Listing is the odds page flattened into two parallel lists. Names carries a
// team name in the first and third slot of each group of three; the middle
// slot belongs to the draw and its text is ignored.
type Listing struct {
	Names  []string
	Quotes []string
}

// GroupError reports a listing group that could not be applied.
type GroupError struct {
	Offset int
	Home   string
	Away   string
	Err    error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("odds group at %d (%s v %s): %v", e.Offset, e.Home, e.Away, e.Err)
}

func (e *GroupError) Unwrap() error { return e.Err }

// Outcome is the result of a reconciliation. Fixtures holds the existing
// records in their original order followed by any created ones.
type Outcome struct {
	Fixtures []*fixture.Fixture
	Matched  int
	Created  []*fixture.Fixture
	Rejected []error
}

// Err joins the rejected groups, or returns nil.
func (o Outcome) Err() error { return errors.Join(o.Rejected...) }

// Reconcile attaches odds from the listing to existing records, creating a
// record for any group whose names match none of them. Matching uses exact
// name text. A group that cannot be applied is recorded in Rejected and the
// remaining groups are still processed.
func Reconcile(norm *fixture.Normalizer, listing Listing, existing []*fixture.Fixture) (Outcome, error) {
	if norm == nil {
		return Outcome{}, errors.New("reconcile requires a normalizer")
	}
	if err := checkSize(norm.Teams().Size(), listing); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Fixtures: append([]*fixture.Fixture(nil), existing...)}
	for k := 0; k < len(listing.Names); k += GroupSize {
		if k+GroupSize > len(listing.Names) {
			out.Rejected = append(out.Rejected, &GroupError{
				Offset: k,
				Home:   listing.Names[k],
				Err:    fmt.Errorf("%w: trailing group of %d entries", ErrInsufficientData, len(listing.Names)-k),
			})
			break
		}
		home, away := listing.Names[k], listing.Names[k+2]
		quotes := listing.Quotes[k : k+GroupSize]

		if f := find(out.Fixtures, home, away); f != nil {
			if err := f.SetOdds(quotes[0], quotes[1], quotes[2]); err != nil {
				out.Rejected = append(out.Rejected, &GroupError{Offset: k, Home: home, Away: away, Err: err})
				continue
			}
			out.Matched++
			continue
		}

		f, err := norm.New(home, away)
		if err != nil {
			out.Rejected = append(out.Rejected, &GroupError{Offset: k, Home: home, Away: away, Err: err})
			continue
		}
		if err := f.SetOdds(quotes[0], quotes[1], quotes[2]); err != nil {
			out.Rejected = append(out.Rejected, &GroupError{Offset: k, Home: home, Away: away, Err: err})
			continue
		}
		out.Fixtures = append(out.Fixtures, f)
		out.Created = append(out.Created, f)
	}
	return out, nil
}

func checkSize(leagueSize int, listing Listing) error {
	names, quotes := len(listing.Names), len(listing.Quotes)
	// names >= 1.5 * leagueSize, kept in integers.
	if 2*names < 3*leagueSize {
		return fmt.Errorf("%w: %d names for a league of %d", ErrInsufficientData, names, leagueSize)
	}
	if quotes < names {
		return fmt.Errorf("%w: %d quotes for %d names", ErrInsufficientData, quotes, names)
	}
	return nil
}

func find(fixtures []*fixture.Fixture, home, away string) *fixture.Fixture {
	for _, f := range fixtures {
		if f.Home() == home && f.Away() == away {
			return f
		}
	}
	return nil
}
