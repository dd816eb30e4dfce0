package update

import (
	"errors"
	"fmt"

	"matchday/internal/extract"
	"matchday/internal/fixture"
)

// RecordError reports a match that could not be turned into a record.
type RecordError struct {
	Index int
	Home  string
	Away  string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("match %d (%s v %s): %v", e.Index, e.Home, e.Away, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Built holds the records made from one batch and the matches that failed.
type Built struct {
	Fixtures []*fixture.Fixture
	Rejected []error
}

// Err joins the rejected matches, or returns nil.
func (b Built) Err() error { return errors.Join(b.Rejected...) }

// BuildFixtures creates one record per match on a fixtures page. The date is
// attached when its label is non-empty and the kickoff when the batch
// carries kickoffs. A match whose names or labels do not parse is rejected;
// the rest are still built.
func BuildFixtures(norm *fixture.Normalizer, batch *extract.Batch) (Built, error) {
	return build(norm, batch, func(f *fixture.Fixture, i int) error {
		if len(batch.Kickoffs) == 0 {
			return nil
		}
		if label := batch.Kickoffs[i]; label != "" {
			return f.SetKickoff(label)
		}
		return nil
	})
}

// BuildResults creates one record per match on a results page, attaching the
// date and final score. A match without a score label is rejected.
func BuildResults(norm *fixture.Normalizer, batch *extract.Batch) (Built, error) {
	return build(norm, batch, func(f *fixture.Fixture, i int) error {
		if len(batch.Scores) == 0 || batch.Scores[i] == "" {
			return &fixture.FieldError{UID: f.UID(), Field: "result"}
		}
		return f.SetResult(batch.Scores[i])
	})
}

func build(norm *fixture.Normalizer, batch *extract.Batch, attach func(*fixture.Fixture, int) error) (Built, error) {
	if norm == nil {
		return Built{}, errors.New("build requires a normalizer")
	}
	if batch == nil {
		return Built{}, errors.New("build requires a batch")
	}
	if err := batch.Check(); err != nil {
		return Built{}, err
	}

	var out Built
	for i, home := range batch.Home {
		away := batch.Away[i]
		reject := func(err error) {
			out.Rejected = append(out.Rejected, &RecordError{Index: i, Home: home, Away: away, Err: err})
		}

		f, err := norm.New(home, away)
		if err != nil {
			reject(err)
			continue
		}
		if len(batch.Dates) > 0 && batch.Dates[i] != "" {
			if err := f.SetDate(batch.Dates[i]); err != nil {
				reject(err)
				continue
			}
		}
		if err := attach(f, i); err != nil {
			reject(err)
			continue
		}
		out.Fixtures = append(out.Fixtures, f)
	}
	return out, nil
}
