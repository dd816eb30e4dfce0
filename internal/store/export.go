package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// ErrExists marks an export or backup target that already exists.
var ErrExists = errors.New("file already exists")

// ExportHeadings is the header row of a CSV export.
var ExportHeadings = []string{
	"ROW", "ID", "HOME", "AWAY", "TIMESTAMP", "DATE", "TIME",
	"ODDS (H)", "ODDS (D)", "ODDS (A)", "SCORE (H)", "SCORE (A)", "RESULT",
}

// Export writes every stored fixture to path as CSV and returns the number of
// values written, headings excluded. An existing file is only replaced when
// overwrite is set.
func (s *Store) Export(ctx context.Context, path string, overwrite bool) (int, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return 0, fmt.Errorf("export %s: %w", path, ErrExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("stat export target: %w", err)
		}
	}

	rows, err := s.List(ctx, Filter{})
	if err != nil {
		return 0, err
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(ExportHeadings); err != nil {
		return 0, fmt.Errorf("write headings: %w", err)
	}
	values := 0
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.UID,
			r.Home,
			r.Away,
			r.CapturedAt,
			r.Date,
			r.Kickoff,
			formatFloat(r.OddsHome),
			formatFloat(r.OddsDraw),
			formatFloat(r.OddsAway),
			formatInt(r.ScoreHome),
			formatInt(r.ScoreAway),
			r.Outcome,
		}
		if err := w.Write(record); err != nil {
			return values, fmt.Errorf("write %s: %w", r.UID, err)
		}
		values += len(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return values, fmt.Errorf("flush export: %w", err)
	}
	return values, file.Close()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
