package store

import (
	"database/sql"
	"errors"
	"time"

	"matchday/internal/fixture"
)

const fixtureColumns = `id, uid, home, away, captured_at, match_date, kickoff,
	odds_home, odds_draw, odds_away, score_home, score_away, outcome, updated_at`

func scanRow(scanner interface{ Scan(dest ...any) error }) (*Row, error) {
	var (
		row                          Row
		date, kickoff, outcome       sql.NullString
		oddsHome, oddsDraw, oddsAway sql.NullFloat64
		scoreHome, scoreAway         sql.NullInt64
	)
	if err := scanner.Scan(
		&row.ID, &row.UID, &row.Home, &row.Away, &row.CapturedAt, &date, &kickoff,
		&oddsHome, &oddsDraw, &oddsAway, &scoreHome, &scoreAway, &outcome, &row.UpdatedAt,
	); err != nil {
		return nil, err
	}
	row.Date = date.String
	row.Kickoff = kickoff.String
	row.Outcome = outcome.String
	row.OddsHome = nullFloat(oddsHome)
	row.OddsDraw = nullFloat(oddsDraw)
	row.OddsAway = nullFloat(oddsAway)
	row.ScoreHome = nullInt(scoreHome)
	row.ScoreAway = nullInt(scoreAway)
	return &row, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// optionalDate returns the fixture date as text, or nil when unset.
func optionalDate(f *fixture.Fixture) (any, error) {
	date, err := f.Date()
	if errors.Is(err, fixture.ErrFieldNotSet) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return date.Format(fixture.DateLayout), nil
}

// optionalKickoff returns the kickoff as text, or nil when unset.
func optionalKickoff(f *fixture.Fixture) (any, error) {
	kickoff, err := f.Kickoff()
	if errors.Is(err, fixture.ErrFieldNotSet) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return kickoff.String(), nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
