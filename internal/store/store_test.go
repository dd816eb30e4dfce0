package store_test

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"matchday/internal/fixture"
	"matchday/internal/store"
	"matchday/internal/testsupport"
)

var storeDay = time.Date(2016, time.August, 14, 18, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithSmallLeague())
	return testsupport.MustOpenStore(t, cfg, store.WithClock(testsupport.Clock(storeDay)))
}

func datedFixture(t *testing.T, n *fixture.Normalizer, home, away string) *fixture.Fixture {
	t.Helper()
	f := testsupport.MustFixture(t, n, home, away)
	if err := f.SetDate("Saturday 13th August 2016"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}
	if err := f.SetKickoff("15:00"); err != nil {
		t.Fatalf("SetKickoff: %v", err)
	}
	return f
}

func TestEnterFixturesReportsDuplicates(t *testing.T) {
	st := openStore(t)
	n := testsupport.Normalizer(t, testsupport.SmallLeague(t))
	ctx := context.Background()

	first := []*fixture.Fixture{
		datedFixture(t, n, "Arsenal", "Chelsea"),
		testsupport.MustFixture(t, n, "Liverpool", "Tottenham"),
	}
	res, err := st.EnterFixtures(ctx, first)
	if err != nil {
		t.Fatalf("EnterFixtures: %v", err)
	}
	if len(res.Inserted) != 2 || res.DuplicateErr() != nil {
		t.Fatalf("unexpected first result: %+v", res)
	}

	again := []*fixture.Fixture{
		datedFixture(t, n, "Arsenal", "Chelsea"),
		testsupport.MustFixture(t, n, "Man City", "Man Utd"),
	}
	res, err = st.EnterFixtures(ctx, again)
	if err != nil {
		t.Fatalf("EnterFixtures again: %v", err)
	}
	if len(res.Inserted) != 1 || res.Inserted[0] != "MCI-MUN" {
		t.Fatalf("expected MCI-MUN inserted, got %v", res.Inserted)
	}
	if len(res.Duplicates) != 1 || res.Duplicates[0] != "ARS-CHE-2016" {
		t.Fatalf("expected ARS-CHE-2016 duplicate, got %v", res.Duplicates)
	}
	dupErr := res.DuplicateErr()
	if !errors.Is(dupErr, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", dupErr)
	}
	if !strings.Contains(dupErr.Error(), "ARS-CHE-2016") {
		t.Fatalf("duplicate error should name the uid: %v", dupErr)
	}

	row, err := st.Get(ctx, "ARS-CHE-2016")
	if err != nil || row == nil {
		t.Fatalf("Get: row=%v err=%v", row, err)
	}
	if row.Date != "2016-08-13" || row.Kickoff != "15:00:00" || row.CapturedAt != "2016-08-12" {
		t.Fatalf("unexpected stored fields: %+v", row)
	}
	if row.HasOdds() || row.HasResult() {
		t.Fatalf("new row should carry no odds or result: %+v", row)
	}
	undated, err := st.Get(ctx, "LIV-TOT")
	if err != nil || undated == nil {
		t.Fatalf("Get undated: row=%v err=%v", undated, err)
	}
	if undated.Date != "" || undated.Kickoff != "" {
		t.Fatalf("undated row should have empty date fields: %+v", undated)
	}
}

func TestDuplicateErrorSummarizesLongLists(t *testing.T) {
	uids := make([]string, 12)
	for i := range uids {
		uids[i] = "ARS-CHE"
	}
	err := &store.DuplicateError{UIDs: uids}
	if got := err.Error(); got != "12 fixtures already stored" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUpdateOddsClassifiesFixtures(t *testing.T) {
	st := openStore(t)
	n := testsupport.Normalizer(t, testsupport.SmallLeague(t))
	ctx := context.Background()

	stored := testsupport.MustFixture(t, n, "Arsenal", "Chelsea")
	noOdds := testsupport.MustFixture(t, n, "Liverpool", "Tottenham")
	if _, err := st.EnterFixtures(ctx, []*fixture.Fixture{stored, noOdds}); err != nil {
		t.Fatalf("EnterFixtures: %v", err)
	}
	if err := stored.SetOdds("2/3", "2/1", "7/2"); err != nil {
		t.Fatalf("SetOdds: %v", err)
	}
	notStored := testsupport.MustFixture(t, n, "Man City", "Man Utd")
	if err := notStored.SetOdds("1/1", "1/1", "1/1"); err != nil {
		t.Fatalf("SetOdds: %v", err)
	}

	res, err := st.UpdateOdds(ctx, []*fixture.Fixture{stored, noOdds, notStored})
	if err != nil {
		t.Fatalf("UpdateOdds: %v", err)
	}
	if len(res.Updated) != 1 || res.Updated[0] != "ARS-CHE" {
		t.Fatalf("unexpected updated: %v", res.Updated)
	}
	if len(res.Unset) != 1 || res.Unset[0] != "LIV-TOT" {
		t.Fatalf("unexpected unset: %v", res.Unset)
	}
	if len(res.Missing) != 1 || res.Missing[0] != "MCI-MUN" {
		t.Fatalf("unexpected missing: %v", res.Missing)
	}

	row, err := st.Get(ctx, "ARS-CHE")
	if err != nil || row == nil {
		t.Fatalf("Get: row=%v err=%v", row, err)
	}
	if !row.HasOdds() || *row.OddsHome != 0.66667 || *row.OddsDraw != 2 || *row.OddsAway != 3.5 {
		t.Fatalf("unexpected odds: %+v", row)
	}
	if row.UpdatedAt != "2016-08-14 18:00:00" {
		t.Fatalf("expected updated_at from injected clock, got %q", row.UpdatedAt)
	}
}

func TestUpdateResultsStoresOutcome(t *testing.T) {
	st := openStore(t)
	n := testsupport.Normalizer(t, testsupport.SmallLeague(t))
	ctx := context.Background()

	f := datedFixture(t, n, "Man Utd", "Liverpool")
	if _, err := st.EnterFixtures(ctx, []*fixture.Fixture{f}); err != nil {
		t.Fatalf("EnterFixtures: %v", err)
	}
	if err := f.SetResult("0-2"); err != nil {
		t.Fatalf("SetResult: %v", err)
	}
	res, err := st.UpdateResults(ctx, []*fixture.Fixture{f})
	if err != nil {
		t.Fatalf("UpdateResults: %v", err)
	}
	if len(res.Updated) != 1 {
		t.Fatalf("expected one update, got %+v", res)
	}
	row, err := st.Get(ctx, f.UID())
	if err != nil || row == nil {
		t.Fatalf("Get: row=%v err=%v", row, err)
	}
	if !row.HasResult() || *row.ScoreHome != 0 || *row.ScoreAway != 2 || row.Outcome != "A" {
		t.Fatalf("unexpected result: %+v", row)
	}
}

func TestGetReturnsNilForUnknownUID(t *testing.T) {
	st := openStore(t)
	row, err := st.Get(context.Background(), "ARS-CHE")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if row != nil {
		t.Fatalf("expected nil row, got %+v", row)
	}
}

func TestListFiltersByTeamAndUID(t *testing.T) {
	st := openStore(t)
	n := testsupport.Normalizer(t, testsupport.SmallLeague(t))
	ctx := context.Background()

	fixtures := []*fixture.Fixture{
		testsupport.MustFixture(t, n, "Arsenal", "Chelsea"),
		testsupport.MustFixture(t, n, "Liverpool", "Arsenal"),
		testsupport.MustFixture(t, n, "Man City", "Tottenham"),
	}
	if _, err := st.EnterFixtures(ctx, fixtures); err != nil {
		t.Fatalf("EnterFixtures: %v", err)
	}

	all, err := st.List(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].UID != "ARS-CHE" || all[2].UID != "MCI-TOT" {
		t.Fatalf("unexpected listing order: %v", uids(all))
	}

	ars, err := st.List(ctx, store.Filter{Team: "ars"})
	if err != nil {
		t.Fatalf("List team: %v", err)
	}
	if got := uids(ars); len(got) != 2 || got[0] != "ARS-CHE" || got[1] != "LIV-ARS" {
		t.Fatalf("unexpected team listing: %v", got)
	}

	picked, err := st.List(ctx, store.Filter{UIDs: []string{"MCI-TOT", "LIV-ARS"}})
	if err != nil {
		t.Fatalf("List uids: %v", err)
	}
	if got := uids(picked); len(got) != 2 || got[0] != "LIV-ARS" || got[1] != "MCI-TOT" {
		t.Fatalf("unexpected uid listing: %v", got)
	}
}

func TestStatsCountsFilledColumns(t *testing.T) {
	st := openStore(t)
	n := testsupport.Normalizer(t, testsupport.SmallLeague(t))
	ctx := context.Background()

	a := testsupport.MustFixture(t, n, "Arsenal", "Chelsea")
	b := testsupport.MustFixture(t, n, "Liverpool", "Tottenham")
	if _, err := st.EnterFixtures(ctx, []*fixture.Fixture{a, b}); err != nil {
		t.Fatalf("EnterFixtures: %v", err)
	}
	_ = a.SetOdds("1/2", "3/1", "5/1")
	_ = a.SetResult("1-1")
	if _, err := st.UpdateOdds(ctx, []*fixture.Fixture{a}); err != nil {
		t.Fatalf("UpdateOdds: %v", err)
	}
	if _, err := st.UpdateResults(ctx, []*fixture.Fixture{a}); err != nil {
		t.Fatalf("UpdateResults: %v", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 || stats.WithOdds != 1 || stats.WithResults != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCheckHealthReportsHealthyDatabase(t *testing.T) {
	st := openStore(t)
	health, err := st.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists || !health.IntegrityCheck {
		t.Fatalf("expected healthy database: %+v", health)
	}
	if health.SchemaVersion != 1 {
		t.Fatalf("unexpected schema version %d", health.SchemaVersion)
	}
	if len(health.MissingColumns) != 0 {
		t.Fatalf("unexpected missing columns: %v", health.MissingColumns)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odds.sqlite")
	st, err := store.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	st.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := store.OpenPath(path); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestExportWritesCSV(t *testing.T) {
	st := openStore(t)
	n := testsupport.Normalizer(t, testsupport.SmallLeague(t))
	ctx := context.Background()

	f := datedFixture(t, n, "Arsenal", "Chelsea")
	if _, err := st.EnterFixtures(ctx, []*fixture.Fixture{f, testsupport.MustFixture(t, n, "Liverpool", "Tottenham")}); err != nil {
		t.Fatalf("EnterFixtures: %v", err)
	}
	_ = f.SetOdds("2/3", "2/1", "7/2")
	if _, err := st.UpdateOdds(ctx, []*fixture.Fixture{f}); err != nil {
		t.Fatalf("UpdateOdds: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixtures.csv")
	values, err := st.Export(ctx, path, false)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if values != 2*len(store.ExportHeadings) {
		t.Fatalf("expected %d values, got %d", 2*len(store.ExportHeadings), values)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected headings plus two rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(store.ExportHeadings, ",") {
		t.Fatalf("unexpected headings %v", records[0])
	}
	want := []string{"1", "ARS-CHE-2016", "Arsenal", "Chelsea", "2016-08-12", "2016-08-13", "15:00:00", "0.66667", "2", "3.5", "", "", ""}
	if strings.Join(records[1], "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected row\n got %v\nwant %v", records[1], want)
	}

	if _, err := st.Export(ctx, path, false); !errors.Is(err, store.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := st.Export(ctx, path, true); err != nil {
		t.Fatalf("Export overwrite: %v", err)
	}
}

func TestBackupNamesAndLimit(t *testing.T) {
	st := openStore(t)
	dir := filepath.Join(t.TempDir(), "backups")
	ctx := context.Background()

	first, err := st.Backup(ctx, dir, 2)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if filepath.Base(first) != "odds-2016-08-14.sqlite" {
		t.Fatalf("unexpected first backup %s", first)
	}
	second, err := st.Backup(ctx, dir, 2)
	if err != nil {
		t.Fatalf("second Backup: %v", err)
	}
	if filepath.Base(second) != "odds-2016-08-14-1.sqlite" {
		t.Fatalf("unexpected second backup %s", second)
	}
	if _, err := st.Backup(ctx, dir, 2); !errors.Is(err, store.ErrTooManyBackups) {
		t.Fatalf("expected ErrTooManyBackups, got %v", err)
	}

	copyStore, err := store.OpenPath(first)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer copyStore.Close()
	if _, err := copyStore.Stats(ctx); err != nil {
		t.Fatalf("backup should be a usable database: %v", err)
	}
}

func uids(rows []*store.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.UID
	}
	return out
}
