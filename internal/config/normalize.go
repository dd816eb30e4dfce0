package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSources()
	c.normalizeLayout()
	c.normalizeLeague()
	if c.Backup.MaxSaves <= 0 {
		c.Backup.MaxSaves = defaultMaxSaves
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = expandPath(strings.TrimSpace(c.Paths.BackupDir)); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SnapshotDir) == "" {
		c.Paths.SnapshotDir = defaultSnapshotDir
	}
	if c.Paths.SnapshotDir, err = expandPath(strings.TrimSpace(c.Paths.SnapshotDir)); err != nil {
		return fmt.Errorf("paths.snapshot_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSources() {
	c.Sources.FixturesURL = strings.TrimSpace(c.Sources.FixturesURL)
	c.Sources.ResultsURL = strings.TrimSpace(c.Sources.ResultsURL)
	c.Sources.OddsURL = strings.TrimSpace(c.Sources.OddsURL)
	c.Sources.UserAgent = strings.TrimSpace(c.Sources.UserAgent)
	if c.Sources.UserAgent == "" {
		c.Sources.UserAgent = defaultUserAgent
	}
	if c.Sources.RequestTimeout <= 0 {
		c.Sources.RequestTimeout = defaultRequestTimeout
	}
	if c.Sources.RequestsPerSecond <= 0 {
		c.Sources.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.Sources.Burst <= 0 {
		c.Sources.Burst = defaultBurst
	}
	if c.Sources.SnapshotRetentionDays < 0 {
		c.Sources.SnapshotRetentionDays = 0
	}
}

func (c *Config) normalizeLayout() {
	c.Layout.Fixtures = c.Layout.Fixtures.WithDefaults()
	c.Layout.Odds.Names = strings.TrimSpace(c.Layout.Odds.Names)
	c.Layout.Odds.Quotes = strings.TrimSpace(c.Layout.Odds.Quotes)
}

func (c *Config) normalizeLeague() {
	c.League.Name = strings.TrimSpace(c.League.Name)
	if c.League.Name == "" {
		c.League.Name = defaultLeagueName
	}
	for i := range c.League.Teams {
		team := &c.League.Teams[i]
		team.Code = strings.ToUpper(strings.TrimSpace(team.Code))
		names := team.Names[:0]
		for _, name := range team.Names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		team.Names = names
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
