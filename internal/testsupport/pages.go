package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// PageMatch is one row on a synthetic fixtures or results page. Empty
// Kickoff or Score omits that cell.
type PageMatch struct {
	Date    string
	Home    string
	Away    string
	Kickoff string
	Score   string
}

// FixturesPage renders matches in the fixtures/results page layout. A date
// heading is emitted whenever the date differs from the previous match.
func FixturesPage(matches []PageMatch) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n<div class=\"nav\"><span class=\"team-home teams\"><a>Menu</a></span></div>\n")
	b.WriteString("<div class=\"stats-body\">\n")
	last := ""
	for _, m := range matches {
		if m.Date != "" && m.Date != last {
			fmt.Fprintf(&b, "  <h2 class=\"table-header\">%s</h2>\n", m.Date)
			last = m.Date
		}
		b.WriteString("  <div class=\"fixture\"><table><tr>\n")
		fmt.Fprintf(&b, "    <td><span class=\"team-home teams\"><a href=\"#\">%s</a></span></td>\n", m.Home)
		if m.Score != "" {
			fmt.Fprintf(&b, "    <td><span class=\"score\"><abbr title=\"Score\">%s</abbr></span></td>\n", m.Score)
		}
		fmt.Fprintf(&b, "    <td><span class=\"team-away teams\"><a href=\"#\">%s</a></span></td>\n", m.Away)
		if m.Kickoff != "" {
			fmt.Fprintf(&b, "    <td class=\"kickoff\">%s</td>\n", m.Kickoff)
		}
		b.WriteString("  </tr></table></div>\n")
	}
	b.WriteString("</div>\n</body></html>\n")
	return b.String()
}

// OddsGroup is one match on a synthetic odds page.
type OddsGroup struct {
	Home, Away                   string
	HomeOdds, DrawOdds, AwayOdds string
}

// OddsPage renders groups in the odds page layout.
func OddsPage(groups []OddsGroup) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"market\">\n")
	for _, g := range groups {
		b.WriteString("<ul>\n")
		fmt.Fprintf(&b, "<li><span class=\"fixtures-bet-name\">%s</span><span class=\"odds\">(%s)</span></li>\n", g.Home, g.HomeOdds)
		fmt.Fprintf(&b, "<li><span class=\"fixtures-bet-name\">Draw</span><span class=\"odds\">(%s)</span></li>\n", g.DrawOdds)
		fmt.Fprintf(&b, "<li><span class=\"fixtures-bet-name\">%s</span><span class=\"odds\">(%s)</span></li>\n", g.Away, g.AwayOdds)
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div></body></html>\n")
	return b.String()
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
