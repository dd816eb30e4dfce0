package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrTooManyBackups marks a day whose backup names are exhausted.
var ErrTooManyBackups = errors.New("too many backups")

// BackupName returns the file name of the n-th backup taken on day; n == 0 is
// the first.
func BackupName(day time.Time, n int) string {
	base := "odds-" + day.Format("2006-01-02")
	if n == 0 {
		return base + ".sqlite"
	}
	return fmt.Sprintf("%s-%d.sqlite", base, n)
}

// Backup writes a consistent copy of the database to dir, named after today's
// date. Later backups on the same day get a numeric suffix; after maxSaves
// names are taken the backup fails with ErrTooManyBackups.
func (s *Store) Backup(ctx context.Context, dir string, maxSaves int) (string, error) {
	ctx = ensureContext(ctx)
	if maxSaves <= 0 {
		maxSaves = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	day := s.now()
	target := ""
	for n := 0; n < maxSaves; n++ {
		candidate := filepath.Join(dir, BackupName(day, n))
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			target = candidate
			break
		} else if err != nil {
			return "", fmt.Errorf("stat backup target: %w", err)
		}
	}
	if target == "" {
		return "", fmt.Errorf("%w: %d backups already taken on %s", ErrTooManyBackups, maxSaves, day.Format("2006-01-02"))
	}

	if err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, "VACUUM INTO ?", target)
		return err
	}); err != nil {
		return "", fmt.Errorf("backup database: %w", err)
	}
	return target, nil
}
