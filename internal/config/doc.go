// Package config loads, normalizes, and validates matchday configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a .env file when present, and honours
// MATCHDAY_* environment overrides. The Config type centralizes the data
// directories, source URLs, page layout, league table, backup policy, and
// logging settings so the CLI and update runner discover everything in one
// pass.
package config
