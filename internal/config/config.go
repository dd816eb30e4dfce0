package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"matchday/internal/extract"
	"matchday/internal/league"
	"matchday/internal/oddspage"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir     string `toml:"data_dir"`
	LogDir      string `toml:"log_dir"`
	BackupDir   string `toml:"backup_dir"`
	SnapshotDir string `toml:"snapshot_dir"`
}

// Sources describes where pages are fetched from and how politely.
type Sources struct {
	FixturesURL           string  `toml:"fixtures_url"`
	ResultsURL            string  `toml:"results_url"`
	OddsURL               string  `toml:"odds_url"`
	UserAgent             string  `toml:"user_agent"`
	RequestTimeout        int     `toml:"request_timeout"`
	RequestsPerSecond     float64 `toml:"requests_per_second"`
	Burst                 int     `toml:"burst"`
	SaveSnapshots         bool    `toml:"save_snapshots"`
	SnapshotRetentionDays int     `toml:"snapshot_retention_days"`
}

// Layout holds the markers used to read the fixtures/results and odds pages.
type Layout struct {
	Fixtures extract.Layout     `toml:"fixtures"`
	Odds     oddspage.Selectors `toml:"odds"`
}

// Team is one league member as written in the config file.
type Team struct {
	Code  string   `toml:"code"`
	Names []string `toml:"names"`
}

// League selects the league table. An empty team list uses the built-in
// Premier League.
type League struct {
	Name  string `toml:"name"`
	Teams []Team `toml:"teams"`
}

// Backup controls dated database copies.
type Backup struct {
	MaxSaves int `toml:"max_saves"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for matchday.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Sources Sources `toml:"sources"`
	Layout  Layout  `toml:"layout"`
	League  League  `toml:"league"`
	Backup  Backup  `toml:"backup"`
	Logging Logging `toml:"logging"`
}

// Environment variables applied after the config file.
const (
	EnvDataDir   = "MATCHDAY_DATA_DIR"
	EnvLogLevel  = "MATCHDAY_LOG_LEVEL"
	EnvLogFormat = "MATCHDAY_LOG_FORMAT"
	EnvUserAgent = "MATCHDAY_USER_AGENT"
)

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A .env file in the
// working directory is loaded first so its values reach the environment
// overrides; variables already set in the process win.
func Load(path string) (*Config, string, bool, error) {
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("matchday.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvDataDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = value
	}
	if value, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv(EnvLogFormat); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv(EnvUserAgent); ok && strings.TrimSpace(value) != "" {
		c.Sources.UserAgent = value
	}
}

// EnsureDirectories creates the data, log, and backup directories, plus the
// snapshot directory when snapshots are enabled.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.BackupDir}
	if c.Sources.SaveSnapshots {
		dirs = append(dirs, c.Paths.SnapshotDir)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, databaseFile)
}

// LockPath returns the lock file guarding update runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, lockFile)
}

// RequestTimeout returns the per-request fetch timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Sources.RequestTimeout) * time.Second
}

// LeagueTable builds the configured league table.
func (c *Config) LeagueTable() (*league.Table, error) {
	if len(c.League.Teams) == 0 {
		return league.Default(), nil
	}
	members := make([]league.Member, 0, len(c.League.Teams))
	for _, team := range c.League.Teams {
		members = append(members, league.Member{Code: team.Code, Names: team.Names})
	}
	table, err := league.NewTable(c.League.Name, members)
	if err != nil {
		return nil, fmt.Errorf("league.teams: %w", err)
	}
	return table, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}
