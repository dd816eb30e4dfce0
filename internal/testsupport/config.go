package testsupport

import (
	"path/filepath"
	"testing"

	"matchday/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths = config.Paths{
		DataDir:     filepath.Join(base, "data"),
		LogDir:      filepath.Join(base, "logs"),
		BackupDir:   filepath.Join(base, "backups"),
		SnapshotDir: filepath.Join(base, "snapshots"),
	}
	cfgVal.Sources.RequestsPerSecond = 1000
	cfgVal.Sources.Burst = 10
	cfgVal.Sources.RequestTimeout = 5

	builder := &configBuilder{cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithSourceURL points all three sources at one base URL, using the paths
// /fixtures, /results and /odds.
func WithSourceURL(base string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sources.FixturesURL = base + "/fixtures"
		b.cfg.Sources.ResultsURL = base + "/results"
		b.cfg.Sources.OddsURL = base + "/odds"
	}
}

// WithSnapshots enables snapshot saving.
func WithSnapshots() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sources.SaveSnapshots = true
	}
}

// WithSmallLeague replaces the league table with SmallLeagueMembers.
func WithSmallLeague() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.League.Name = "Test League"
		b.cfg.League.Teams = nil
		for _, m := range SmallLeagueMembers {
			b.cfg.League.Teams = append(b.cfg.League.Teams, config.Team{Code: m.Code, Names: m.Names})
		}
	}
}
