package config

import (
	"matchday/internal/extract"
	"matchday/internal/oddspage"
)

const (
	defaultConfigPath            = "~/.config/matchday/config.toml"
	defaultDataDir               = "~/.local/share/matchday"
	defaultLogDir                = "~/.local/share/matchday/logs"
	defaultBackupDir             = "~/.local/share/matchday/backups"
	defaultSnapshotDir           = "~/.local/share/matchday/snapshots"
	defaultFixturesURL           = "https://www.bbc.co.uk/sport/football/premier-league/fixtures"
	defaultResultsURL            = "https://www.bbc.co.uk/sport/football/premier-league/results"
	defaultOddsURL               = "https://www.paddypower.com/football/english-premier-league"
	defaultUserAgent             = "matchday/dev"
	defaultRequestTimeout        = 30
	defaultRequestsPerSecond     = 1.0
	defaultBurst                 = 1
	defaultSnapshotRetentionDays = 30
	defaultLeagueName            = "Premier League"
	defaultMaxSaves              = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogRetentionDays      = 60

	databaseFile = "odds.sqlite"
	lockFile     = "matchday.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
			BackupDir:   defaultBackupDir,
			SnapshotDir: defaultSnapshotDir,
		},
		Sources: Sources{
			FixturesURL:           defaultFixturesURL,
			ResultsURL:            defaultResultsURL,
			OddsURL:               defaultOddsURL,
			UserAgent:             defaultUserAgent,
			RequestTimeout:        defaultRequestTimeout,
			RequestsPerSecond:     defaultRequestsPerSecond,
			Burst:                 defaultBurst,
			SnapshotRetentionDays: defaultSnapshotRetentionDays,
		},
		Layout: Layout{
			Fixtures: extract.DefaultLayout(),
			Odds:     oddspage.DefaultSelectors(),
		},
		League: League{
			Name: defaultLeagueName,
		},
		Backup: Backup{
			MaxSaves: defaultMaxSaves,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
