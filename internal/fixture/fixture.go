package fixture

import (
	"errors"
	"fmt"
	"time"
)

// Outcome classifies a final score.
type Outcome string

const (
	OutcomeHome Outcome = "H"
	OutcomeDraw Outcome = "D"
	OutcomeAway Outcome = "A"
)

// DateLayout formats dates in info tuples and storage.
const DateLayout = "2006-01-02"

// Odds holds decimal prices for the three results.
type Odds struct {
	Home float64
	Draw float64
	Away float64
}

// Kickoff is a time of day with minute precision.
type Kickoff struct {
	Hour   int
	Minute int
}

func (k Kickoff) String() string {
	return fmt.Sprintf("%02d:%02d:00", k.Hour, k.Minute)
}

// Result holds the final score and its outcome.
type Result struct {
	Home    int
	Away    int
	Outcome Outcome
}

// BasicInfo is the always-present part of a record.
type BasicInfo struct {
	UID        string
	Home       string
	Away       string
	CapturedAt string
}

// KickoffInfo is the date and time of day as text.
type KickoffInfo struct {
	Date    string
	Kickoff string
}

// Fixture is one match between two league members.
type Fixture struct {
	norm       *Normalizer
	home       string
	away       string
	homeCode   string
	awayCode   string
	uid        string
	capturedAt time.Time

	date    *time.Time
	kickoff *Kickoff
	odds    *Odds
	result  *Result
}

func (f *Fixture) Home() string          { return f.home }
func (f *Fixture) Away() string          { return f.away }
func (f *Fixture) UID() string           { return f.uid }
func (f *Fixture) CapturedAt() time.Time { return f.capturedAt }

func (f *Fixture) String() string {
	return fmt.Sprintf("<Fixture: %s vs. %s>", f.home, f.away)
}

// SetOdds converts three fractional prices ("n/d", optionally wrapped in
// parentheses) to decimals. Every leg is parsed; if any fails the record is
// left unchanged and the returned error names each failing leg.
func (f *Fixture) SetOdds(home, draw, away string) error {
	var errs []error
	h, err := fractionToDecimal(home)
	if err != nil {
		errs = append(errs, fmt.Errorf("home odds: %w", err))
	}
	d, err := fractionToDecimal(draw)
	if err != nil {
		errs = append(errs, fmt.Errorf("draw odds: %w", err))
	}
	a, err := fractionToDecimal(away)
	if err != nil {
		errs = append(errs, fmt.Errorf("away odds: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", f.uid, errors.Join(errs...))
	}
	f.odds = &Odds{Home: h, Draw: d, Away: a}
	return nil
}

// SetDate parses "<weekday> <day> <month> <year>" and requalifies the uid
// with the year.
func (f *Fixture) SetDate(text string) error {
	date, err := parseDate(text, f.norm.months)
	if err != nil {
		return fmt.Errorf("%s: %w", f.uid, err)
	}
	f.date = &date
	f.uid = makeUID(f.homeCode, f.awayCode, date.Year())
	return nil
}

// SetKickoff parses "HH:MM".
func (f *Fixture) SetKickoff(text string) error {
	k, err := parseKickoff(text)
	if err != nil {
		return fmt.Errorf("%s: %w", f.uid, err)
	}
	f.kickoff = &k
	return nil
}

// SetResult parses "<home>-<away>" and derives the outcome.
func (f *Fixture) SetResult(text string) error {
	home, away, err := parseScore(text)
	if err != nil {
		return fmt.Errorf("%s: %w", f.uid, err)
	}
	outcome := OutcomeAway
	switch {
	case home == away:
		outcome = OutcomeDraw
	case home > away:
		outcome = OutcomeHome
	}
	f.result = &Result{Home: home, Away: away, Outcome: outcome}
	return nil
}

// BasicInfo returns uid, names and capture date.
func (f *Fixture) BasicInfo() BasicInfo {
	return BasicInfo{
		UID:        f.uid,
		Home:       f.home,
		Away:       f.away,
		CapturedAt: f.capturedAt.Format(DateLayout),
	}
}

// OddsInfo returns the decimal odds or ErrFieldNotSet.
func (f *Fixture) OddsInfo() (Odds, error) {
	if f.odds == nil {
		return Odds{}, f.unset("odds")
	}
	return *f.odds, nil
}

// KickoffInfo returns the date and kickoff as text; both must be set.
func (f *Fixture) KickoffInfo() (KickoffInfo, error) {
	if f.date == nil {
		return KickoffInfo{}, f.unset("date")
	}
	if f.kickoff == nil {
		return KickoffInfo{}, f.unset("kickoff")
	}
	return KickoffInfo{Date: f.date.Format(DateLayout), Kickoff: f.kickoff.String()}, nil
}

// ResultInfo returns the score and outcome or ErrFieldNotSet.
func (f *Fixture) ResultInfo() (Result, error) {
	if f.result == nil {
		return Result{}, f.unset("result")
	}
	return *f.result, nil
}

// Date returns the match date or ErrFieldNotSet.
func (f *Fixture) Date() (time.Time, error) {
	if f.date == nil {
		return time.Time{}, f.unset("date")
	}
	return *f.date, nil
}

// Kickoff returns the kickoff time or ErrFieldNotSet.
func (f *Fixture) Kickoff() (Kickoff, error) {
	if f.kickoff == nil {
		return Kickoff{}, f.unset("kickoff")
	}
	return *f.kickoff, nil
}

func (f *Fixture) unset(field string) error {
	return &FieldError{UID: f.uid, Field: field}
}
