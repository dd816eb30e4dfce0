package testsupport

import (
	"testing"
	"time"

	"matchday/internal/fixture"
	"matchday/internal/league"
)

// SmallLeagueMembers is a six-team league for tests that need a full round
// of three matches.
var SmallLeagueMembers = []league.Member{
	{Code: "ARS", Names: []string{"Arsenal"}},
	{Code: "CHE", Names: []string{"Chelsea"}},
	{Code: "LIV", Names: []string{"Liverpool"}},
	{Code: "MCI", Names: []string{"Man City", "Manchester City"}},
	{Code: "MUN", Names: []string{"Man Utd", "Manchester United"}},
	{Code: "TOT", Names: []string{"Tottenham"}},
}

// CaptureDay is the date stamped on records made by Normalizer.
var CaptureDay = time.Date(2016, time.August, 12, 9, 30, 0, 0, time.UTC)

// SmallLeague returns the table built from SmallLeagueMembers.
func SmallLeague(t testing.TB) *league.Table {
	t.Helper()
	table, err := league.NewTable("Test League", SmallLeagueMembers)
	if err != nil {
		t.Fatalf("league.NewTable: %v", err)
	}
	return table
}

// Normalizer returns a normalizer over table stamped with CaptureDay.
func Normalizer(t testing.TB, table *league.Table) *fixture.Normalizer {
	t.Helper()
	n, err := fixture.NewNormalizer(table, fixture.WithClock(Clock(CaptureDay)))
	if err != nil {
		t.Fatalf("fixture.NewNormalizer: %v", err)
	}
	return n
}

// MustFixture creates a record or fails the test.
func MustFixture(t testing.TB, n *fixture.Normalizer, home, away string) *fixture.Fixture {
	t.Helper()
	f, err := n.New(home, away)
	if err != nil {
		t.Fatalf("New(%q, %q): %v", home, away, err)
	}
	return f
}
