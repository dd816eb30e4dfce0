package fixture

import (
	"errors"
	"strconv"
	"time"

	"matchday/internal/league"
)

// Normalizer creates fixtures against injected lookup tables.
type Normalizer struct {
	teams  *league.Table
	months league.Months
	now    func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithMonths overrides the month table used by SetDate.
func WithMonths(months league.Months) Option {
	return func(n *Normalizer) {
		if len(months) > 0 {
			n.months = months
		}
	}
}

// NewNormalizer builds a Normalizer for the given league.
func NewNormalizer(teams *league.Table, opts ...Option) (*Normalizer, error) {
	if teams == nil {
		return nil, errors.New("normalizer requires a league table")
	}
	n := &Normalizer{
		teams:  teams,
		months: league.EnglishMonths(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Teams returns the league table the normalizer validates against.
func (n *Normalizer) Teams() *league.Table { return n.teams }

// New validates both names and returns a record stamped with today's date.
func (n *Normalizer) New(home, away string) (*Fixture, error) {
	homeCode, ok := n.teams.Code(home)
	if !ok {
		return nil, &NameError{Side: SideHome, Name: home}
	}
	awayCode, ok := n.teams.Code(away)
	if !ok {
		return nil, &NameError{Side: SideAway, Name: away}
	}
	now := n.now()
	f := &Fixture{
		norm:       n,
		home:       home,
		away:       away,
		homeCode:   homeCode,
		awayCode:   awayCode,
		capturedAt: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	f.uid = makeUID(homeCode, awayCode, 0)
	return f, nil
}

// UID returns the identifier for a pair of names, optionally qualified by
// year (zero means no year).
func (n *Normalizer) UID(home, away string, year int) (string, error) {
	homeCode, ok := n.teams.Code(home)
	if !ok {
		return "", &NameError{Side: SideHome, Name: home}
	}
	awayCode, ok := n.teams.Code(away)
	if !ok {
		return "", &NameError{Side: SideAway, Name: away}
	}
	return makeUID(homeCode, awayCode, year), nil
}

func makeUID(homeCode, awayCode string, year int) string {
	uid := homeCode + "-" + awayCode
	if year != 0 {
		uid += "-" + strconv.Itoa(year)
	}
	return uid
}
