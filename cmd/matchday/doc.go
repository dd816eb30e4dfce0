// Package main hosts the matchday CLI entrypoint and command graph.
//
// The Cobra-based command tree runs update passes against the fixtures,
// odds and results pages, inspects and exports the fixtures database, and
// parses saved page snapshots offline. Configuration loading, store opening
// and logger setup live in commandContext so subcommands stay declarative.
package main
