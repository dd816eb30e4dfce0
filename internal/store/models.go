package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate marks a fixture whose uid is already stored.
var ErrDuplicate = errors.New("fixture already stored")

// Row is one stored fixture. Optional columns are nil until set.
type Row struct {
	ID         int64    `json:"id"`
	UID        string   `json:"uid"`
	Home       string   `json:"home"`
	Away       string   `json:"away"`
	CapturedAt string   `json:"captured_at"`
	Date       string   `json:"date,omitempty"`
	Kickoff    string   `json:"kickoff,omitempty"`
	OddsHome   *float64 `json:"odds_home,omitempty"`
	OddsDraw   *float64 `json:"odds_draw,omitempty"`
	OddsAway   *float64 `json:"odds_away,omitempty"`
	ScoreHome  *int     `json:"score_home,omitempty"`
	ScoreAway  *int     `json:"score_away,omitempty"`
	Outcome    string   `json:"outcome,omitempty"`
	UpdatedAt  string   `json:"updated_at"`
}

// HasOdds reports whether all three prices are stored.
func (r *Row) HasOdds() bool {
	return r.OddsHome != nil && r.OddsDraw != nil && r.OddsAway != nil
}

// HasResult reports whether a final score is stored.
func (r *Row) HasResult() bool {
	return r.ScoreHome != nil && r.ScoreAway != nil
}

// DuplicateError lists uids that were already stored.
type DuplicateError struct {
	UIDs []string
}

// duplicateListLimit is the most uids spelled out in the error message.
const duplicateListLimit = 10

func (e *DuplicateError) Error() string {
	if len(e.UIDs) <= duplicateListLimit {
		return fmt.Sprintf("%d fixture(s) already stored: %s", len(e.UIDs), strings.Join(e.UIDs, ", "))
	}
	return fmt.Sprintf("%d fixtures already stored", len(e.UIDs))
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// EnterResult reports the outcome of EnterFixtures.
type EnterResult struct {
	Inserted   []string
	Duplicates []string
}

// DuplicateErr returns a DuplicateError when any uid was already stored.
func (r EnterResult) DuplicateErr() error {
	if len(r.Duplicates) == 0 {
		return nil
	}
	return &DuplicateError{UIDs: append([]string(nil), r.Duplicates...)}
}

// UpdateResult reports the outcome of UpdateOdds and UpdateResults.
type UpdateResult struct {
	Updated []string
	// Unset lists fixtures that carried no odds (or no result).
	Unset []string
	// Missing lists fixtures whose uid is not stored.
	Missing []string
}

// Stats counts stored fixtures.
type Stats struct {
	Total       int `json:"total"`
	WithOdds    int `json:"with_odds"`
	WithResults int `json:"with_results"`
}

// Filter narrows List.
type Filter struct {
	// Team matches fixtures where either side has this code.
	Team string
	// UIDs restricts the listing to these identifiers.
	UIDs []string
}

// DatabaseHealth captures diagnostic information about the fixtures database.
type DatabaseHealth struct {
	DBPath           string   `json:"db_path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	SchemaVersion    int      `json:"schema_version"`
	TableExists      bool     `json:"table_exists"`
	ColumnsPresent   []string `json:"columns_present"`
	MissingColumns   []string `json:"missing_columns"`
	IntegrityCheck   bool     `json:"integrity_check"`
	TotalFixtures    int      `json:"total_fixtures"`
	Error            string   `json:"error,omitempty"`
}
