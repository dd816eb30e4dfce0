// Package fixture validates raw strings scraped from fixtures, results and
// odds pages and turns them into typed fixture records.
//
// A Normalizer carries the injected league and month tables. Records are
// created from a (home, away) pair that must resolve to league members and are
// then filled in piecemeal by SetOdds, SetDate, SetKickoff and SetResult.
// Optional fields are read through accessors that return ErrFieldNotSet until
// the field has been assigned, so "never set" can not be mistaken for a zero
// value.
package fixture
