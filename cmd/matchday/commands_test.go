package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"matchday/internal/fetch"
	"matchday/internal/store"
	"matchday/internal/testsupport"
	"matchday/internal/update"
)

func TestUpdateThenInspect(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"update"}, env.configPath)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	requireContains(t, out, "Fixtures extracted: 3")
	requireContains(t, out, "Inserted: 3 (already stored: 0)")
	requireContains(t, out, "Odds matched: 3, created: 0, stored: 3")
	requireContains(t, out, "Results stored: 1 (unknown fixtures: 0)")

	out, _, err = runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "3\t3\t1")

	out, _, err = runCLI(t, []string{"fixtures", "list", "--team", "ars"}, env.configPath)
	if err != nil {
		t.Fatalf("fixtures list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %q", out)
	}
	requireContains(t, lines[1], "ARS-CHE-2016\tArsenal\tChelsea\t2016-08-13\t12:30:00\t0.66667 / 2 / 3.5\t2-1 (H)")

	out, _, err = runCLI(t, []string{"--json", "fixtures", "show", "liv-tot-2016"}, env.configPath)
	if err != nil {
		t.Fatalf("fixtures show: %v", err)
	}
	var row store.Row
	if err := json.Unmarshal([]byte(out), &row); err != nil {
		t.Fatalf("decode show output %q: %v", out, err)
	}
	if row.UID != "LIV-TOT-2016" || row.OddsHome == nil || *row.OddsHome != 1 {
		t.Fatalf("unexpected row: %+v", row)
	}

	if _, _, err := runCLI(t, []string{"fixtures", "show", "CHE-ARS"}, env.configPath); err == nil {
		t.Fatal("expected unknown uid to fail")
	}
}

func TestUpdateJSONSummary(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "update", "--skip-results"}, env.configPath)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	var summary update.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary %q: %v", out, err)
	}
	if summary.Inserted != 3 || summary.OddsUpdated != 3 || summary.ResultsUpdated != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestUpdateReportsOddsFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	delete(env.pages, "/odds")

	out, _, err := runCLI(t, []string{"update", "--skip-results"}, env.configPath)
	if !errors.Is(err, fetch.ErrStatus) {
		t.Fatalf("expected status error, got %v", err)
	}
	requireContains(t, out, "Inserted: 3")
}

func TestExportAndBackup(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"update", "--skip-results"}, env.configPath); err != nil {
		t.Fatalf("update: %v", err)
	}

	target := filepath.Join(t.TempDir(), "fixtures.csv")
	out, _, err := runCLI(t, []string{"export", target}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 39 values")

	if _, _, err := runCLI(t, []string{"export", target}, env.configPath); err == nil {
		t.Fatal("expected export to refuse an existing file")
	}
	if _, _, err := runCLI(t, []string{"export", target, "--overwrite"}, env.configPath); err != nil {
		t.Fatalf("export --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"backup"}, env.configPath)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	requireContains(t, out, "Backup written to "+env.cfg.Paths.BackupDir)
	entries, err := os.ReadDir(env.cfg.Paths.BackupDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one backup file, entries=%v err=%v", entries, err)
	}
}

func TestDBHealth(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"db", "health"}, env.configPath)
	if err != nil {
		t.Fatalf("db health: %v", err)
	}
	requireContains(t, out, "Schema version: 1")
	requireContains(t, out, "Missing columns: none")
	requireContains(t, out, "Integrity check: yes")
}

func TestParseCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()

	fixturesFile := filepath.Join(dir, "fixtures.html")
	testsupport.WriteFile(t, fixturesFile, env.pages["/fixtures"])
	out, _, err := runCLI(t, []string{"parse", "fixtures", fixturesFile}, env.configPath)
	if err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	requireContains(t, out, "2\tLiverpool\tTottenham\t"+cliMatchDay+"\t15:00\t")
	requireContains(t, out, "3 matches")

	oddsFile := filepath.Join(dir, "odds.html")
	testsupport.WriteFile(t, oddsFile, env.pages["/odds"])
	out, _, err = runCLI(t, []string{"parse", "odds", oddsFile}, env.configPath)
	if err != nil {
		t.Fatalf("parse odds: %v", err)
	}
	requireContains(t, out, "Arsenal\tChelsea\t(2/3)\t(2/1)\t(7/2)")
	requireContains(t, out, "9 names, 9 quotes")

	broken := filepath.Join(dir, "broken.html")
	testsupport.WriteFile(t, broken, `<div class="stats-body"><span class="team-home teams"><a>Arsenal</a></span></div>`)
	out, _, err = runCLI(t, []string{"--json", "parse", "fixtures", broken}, env.configPath)
	if err == nil {
		t.Fatal("expected count mismatch error")
	}
	requireContains(t, out, `"error": "away count mismatch: got 0, want 1"`)
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable([]string{"UID", "Odds"}, [][]string{{"ARS-CHE", "0.5"}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "UID")
	requireContains(t, out, "ARS-CHE")
	if !strings.HasPrefix(out, "╭") {
		t.Fatalf("expected rounded table, got %q", out)
	}
}

func TestStatusCheckReportsSources(t *testing.T) {
	env := setupCLITestEnv(t)
	delete(env.pages, "/results")

	out, _, err := runCLI(t, []string{"status", "--check"}, env.configPath)
	if err != nil {
		t.Fatalf("status --check: %v", err)
	}
	requireContains(t, out, "Data directory\tok\t")
	requireContains(t, out, "Fixtures page\tok\t")
	requireContains(t, out, "Results page\tFAIL\t")
}
