package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateLayout(); err != nil {
		return err
	}
	if err := c.validateLeague(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSources() error {
	urls := []struct {
		key   string
		value string
	}{
		{"sources.fixtures_url", c.Sources.FixturesURL},
		{"sources.results_url", c.Sources.ResultsURL},
		{"sources.odds_url", c.Sources.OddsURL},
	}
	for _, u := range urls {
		if u.value == "" {
			return fmt.Errorf("%s must be set", u.key)
		}
		parsed, err := url.Parse(u.value)
		if err != nil {
			return fmt.Errorf("%s: %w", u.key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) url, got %q", u.key, u.value)
		}
	}
	return nil
}

func (c *Config) validateLayout() error {
	if strings.TrimSpace(c.Layout.Fixtures.BodyClass) == "" {
		return errors.New("layout.fixtures.body_class must be set")
	}
	return nil
}

func (c *Config) validateLeague() error {
	if len(c.League.Teams) == 0 {
		return nil
	}
	if _, err := c.LeagueTable(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
