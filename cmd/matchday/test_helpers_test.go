package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"matchday/internal/config"
	"matchday/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	server     *httptest.Server
	pages      map[string]string
}

const cliMatchDay = "Saturday 13th August 2016"

func defaultPages() map[string]string {
	return map[string]string{
		"/fixtures": testsupport.FixturesPage([]testsupport.PageMatch{
			{Date: cliMatchDay, Home: "Arsenal", Away: "Chelsea", Kickoff: "12:30"},
			{Date: cliMatchDay, Home: "Liverpool", Away: "Tottenham", Kickoff: "15:00"},
			{Date: cliMatchDay, Home: "Man City", Away: "Man Utd", Kickoff: "17:30"},
		}),
		"/odds": testsupport.OddsPage([]testsupport.OddsGroup{
			{Home: "Arsenal", Away: "Chelsea", HomeOdds: "2/3", DrawOdds: "2/1", AwayOdds: "7/2"},
			{Home: "Liverpool", Away: "Tottenham", HomeOdds: "1/1", DrawOdds: "5/2", AwayOdds: "3/1"},
			{Home: "Man City", Away: "Man Utd", HomeOdds: "6/4", DrawOdds: "9/4", AwayOdds: "2/1"},
		}),
		"/results": testsupport.FixturesPage([]testsupport.PageMatch{
			{Date: cliMatchDay, Home: "Arsenal", Away: "Chelsea", Score: "2-1"},
		}),
	}
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)
	for _, key := range []string{config.EnvDataDir, config.EnvLogLevel, config.EnvLogFormat, config.EnvUserAgent} {
		t.Setenv(key, "")
	}

	env := &cliTestEnv{pages: defaultPages()}
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := env.pages[r.URL.Path]
		if !ok {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(env.server.Close)

	env.cfg = testsupport.NewConfig(t, testsupport.WithSmallLeague(), testsupport.WithSourceURL(env.server.URL))
	env.configPath = filepath.Join(homeDir, ".config", "matchday", "config.toml")
	writeTestConfig(t, env.configPath, env.cfg)
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteFile(t, path, string(data))
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
