// Package update runs one refresh of the fixtures database: it fetches the
// fixtures, odds and results pages, turns them into records, merges the odds
// into the fixtures and persists everything.
//
// Failures in one step are logged and reported in the returned error while
// the remaining steps still run, so a broken odds page does not stop fixtures
// or results from being stored.
package update
