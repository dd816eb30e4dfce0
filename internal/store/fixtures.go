package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"matchday/internal/fixture"
)

// EnterFixtures inserts new records. A uid that is already stored is listed
// in Duplicates and the rest of the batch is still written.
func (s *Store) EnterFixtures(ctx context.Context, fixtures []*fixture.Fixture) (EnterResult, error) {
	var result EnterResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result = EnterResult{}
		now := timestamp(s.now())
		for _, f := range fixtures {
			info := f.BasicInfo()
			date, err := optionalDate(f)
			if err != nil {
				return err
			}
			kickoff, err := optionalKickoff(f)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO fixtures (uid, home, away, captured_at, match_date, kickoff, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				info.UID, info.Home, info.Away, info.CapturedAt, date, kickoff, now, now,
			)
			if isUniqueViolation(err) {
				result.Duplicates = append(result.Duplicates, info.UID)
				continue
			}
			if err != nil {
				return fmt.Errorf("insert %s: %w", info.UID, err)
			}
			result.Inserted = append(result.Inserted, info.UID)
		}
		return nil
	})
	if err != nil {
		return EnterResult{}, fmt.Errorf("enter fixtures: %w", err)
	}
	return result, nil
}

// UpdateOdds writes the odds of every fixture that has them. Fixtures without
// odds are listed in Unset and fixtures whose uid is not stored in Missing.
func (s *Store) UpdateOdds(ctx context.Context, fixtures []*fixture.Fixture) (UpdateResult, error) {
	var result UpdateResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result = UpdateResult{}
		now := timestamp(s.now())
		for _, f := range fixtures {
			odds, err := f.OddsInfo()
			if errors.Is(err, fixture.ErrFieldNotSet) {
				result.Unset = append(result.Unset, f.UID())
				continue
			}
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx,
				`UPDATE fixtures SET odds_home = ?, odds_draw = ?, odds_away = ?, updated_at = ? WHERE uid = ?`,
				odds.Home, odds.Draw, odds.Away, now, f.UID(),
			)
			if err != nil {
				return fmt.Errorf("update odds %s: %w", f.UID(), err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				result.Missing = append(result.Missing, f.UID())
				continue
			}
			result.Updated = append(result.Updated, f.UID())
		}
		return nil
	})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update odds: %w", err)
	}
	return result, nil
}

// UpdateResults writes final scores. Fixtures without a result are listed in
// Unset and fixtures whose uid is not stored in Missing.
func (s *Store) UpdateResults(ctx context.Context, fixtures []*fixture.Fixture) (UpdateResult, error) {
	var result UpdateResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result = UpdateResult{}
		now := timestamp(s.now())
		for _, f := range fixtures {
			res, err := f.ResultInfo()
			if errors.Is(err, fixture.ErrFieldNotSet) {
				result.Unset = append(result.Unset, f.UID())
				continue
			}
			if err != nil {
				return err
			}
			exec, err := tx.ExecContext(ctx,
				`UPDATE fixtures SET score_home = ?, score_away = ?, outcome = ?, updated_at = ? WHERE uid = ?`,
				res.Home, res.Away, string(res.Outcome), now, f.UID(),
			)
			if err != nil {
				return fmt.Errorf("update result %s: %w", f.UID(), err)
			}
			if n, _ := exec.RowsAffected(); n == 0 {
				result.Missing = append(result.Missing, f.UID())
				continue
			}
			result.Updated = append(result.Updated, f.UID())
		}
		return nil
	})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update results: %w", err)
	}
	return result, nil
}

// Get fetches a fixture by uid. It returns nil when the uid is not stored.
func (s *Store) Get(ctx context.Context, uid string) (*Row, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+fixtureColumns+` FROM fixtures WHERE uid = ?`, uid)
	r, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get fixture: %w", err)
	}
	return r, nil
}

// List returns stored fixtures ordered by insertion.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Row, error) {
	var (
		where []string
		args  []any
	)
	if team := strings.ToUpper(strings.TrimSpace(filter.Team)); team != "" {
		where = append(where, `(substr(uid, 1, 3) = ? OR substr(uid, 5, 3) = ?)`)
		args = append(args, team, team)
	}
	if len(filter.UIDs) > 0 {
		where = append(where, `uid IN (`+makePlaceholders(len(filter.UIDs))+`)`)
		for _, uid := range filter.UIDs {
			args = append(args, uid)
		}
	}
	query := `SELECT ` + fixtureColumns + ` FROM fixtures`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
