package extract_test

import (
	"errors"
	"strings"
	"testing"

	"matchday/internal/extract"
)

type match struct {
	date, home, away, kickoff, score string
}

// matchEvents emits the event stream for one fixture row. Empty kickoff or
// score omits the cell entirely.
func matchEvents(m match) []extract.Event {
	var evs []extract.Event
	if m.date != "" {
		evs = append(evs,
			extract.Open("h2", extract.Class("table-header")),
			extract.Text(m.date),
			extract.Close("h2"),
		)
	}
	evs = append(evs,
		extract.Open("div"),
		extract.Open("span", extract.Class("team-home teams")),
		extract.Open("a", extract.Attr{Key: "href", Val: "/teams/x"}),
		extract.Text(m.home),
		extract.Close("a"),
		extract.Close("span"),
	)
	if m.score != "" {
		evs = append(evs,
			extract.Open("span", extract.Class("score")),
			extract.Open("abbr", extract.Attr{Key: "title", Val: "Score"}),
			extract.Text(m.score),
			extract.Close("abbr"),
			extract.Close("span"),
		)
	}
	evs = append(evs,
		extract.Open("span", extract.Class("team-away teams")),
		extract.Open("a"),
		extract.Text(m.away),
		extract.Close("a"),
		extract.Close("span"),
		extract.Close("div"),
	)
	if m.kickoff != "" {
		evs = append(evs,
			extract.Open("td", extract.Class("kickoff")),
			extract.Text(m.kickoff),
			extract.Close("td"),
		)
	}
	return evs
}

func run(t *testing.T, matches ...match) *extract.Batch {
	t.Helper()
	ex := extract.New(extract.DefaultLayout())
	ex.Handle(extract.Open("div", extract.Class("stats-body")))
	for _, m := range matches {
		for _, ev := range matchEvents(m) {
			ex.Handle(ev)
		}
	}
	ex.Handle(extract.Close("div"))
	if ex.InBody() {
		t.Fatalf("expected body to be closed after final div")
	}
	return ex.Batch()
}

func TestCheckFailsOnlyOnKickoff(t *testing.T) {
	batch := run(t,
		match{date: "Saturday 13th August 2016", home: "Hull", away: "Leicester", kickoff: "12:30"},
		match{home: "Burnley", away: "Swansea", kickoff: "15:00"},
		match{date: "Sunday 14th August 2016", home: "Arsenal", away: "Liverpool"},
	)
	if len(batch.Home) != 3 || len(batch.Away) != 3 || len(batch.Dates) != 3 {
		t.Fatalf("unexpected batch sizes: %+v", batch)
	}
	if len(batch.Kickoffs) != 2 || len(batch.Scores) != 0 {
		t.Fatalf("expected 2 kickoffs and no scores, got %+v", batch)
	}

	err := batch.Check()
	if !errors.Is(err, extract.ErrCountMismatch) {
		t.Fatalf("expected ErrCountMismatch, got %v", err)
	}
	var countErr *extract.CountError
	if !errors.As(err, &countErr) {
		t.Fatalf("expected CountError, got %T", err)
	}
	if countErr.Field != "kickoff" || countErr.Got != 2 || countErr.Want != 3 {
		t.Fatalf("unexpected count error: %+v", countErr)
	}
	if strings.Contains(err.Error(), "score") || strings.Contains(err.Error(), "date") {
		t.Fatalf("only kickoff should be reported, got %v", err)
	}
}

func TestDatesCarryForwardToEveryMatch(t *testing.T) {
	batch := run(t,
		match{date: "Saturday 13th August 2016", home: "Hull", away: "Leicester", score: "2-1"},
		match{home: "Burnley", away: "Swansea", score: "0-1"},
		match{date: "Sunday 14th August 2016", home: "Arsenal", away: "Liverpool", score: "3-4"},
	)
	if err := batch.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := []string{"Saturday 13th August 2016", "Saturday 13th August 2016", "Sunday 14th August 2016"}
	for i, got := range batch.Dates {
		if got != want[i] {
			t.Fatalf("date %d = %q, want %q", i, got, want[i])
		}
	}
	if strings.Join(batch.Scores, ",") != "2-1,0-1,3-4" {
		t.Fatalf("unexpected scores: %v", batch.Scores)
	}
}

func TestAwayMismatchReported(t *testing.T) {
	batch := &extract.Batch{Home: []string{"a", "b"}, Away: []string{"c"}}
	var countErr *extract.CountError
	if err := batch.Check(); !errors.As(err, &countErr) || countErr.Field != "away" {
		t.Fatalf("expected away count error, got %v", err)
	}
	empty := &extract.Batch{}
	if err := empty.Check(); err != nil {
		t.Fatalf("empty batch should pass, got %v", err)
	}
}

func TestNestedContainersDoNotCloseBody(t *testing.T) {
	ex := extract.New(extract.DefaultLayout())
	events := []extract.Event{
		extract.Open("div", extract.Class("stats-body")),
		extract.Open("div"),
		extract.Open("div"),
		extract.Close("div"),
		extract.Close("div"),
		extract.Open("span", extract.Class("team-home teams")),
		extract.Open("a"),
		extract.Text(" Chelsea\n"),
		extract.Close("a"),
		extract.Close("span"),
		extract.Close("div"),
		extract.Open("span", extract.Class("team-home teams")),
		extract.Open("a"),
		extract.Text("Everton"),
	}
	for _, ev := range events {
		ex.Handle(ev)
	}
	batch := ex.Batch()
	if len(batch.Home) != 1 || batch.Home[0] != "Chelsea" {
		t.Fatalf("expected only the in-body name, got %v", batch.Home)
	}
}

func TestTextRequiresBothStages(t *testing.T) {
	ex := extract.New(extract.DefaultLayout())
	for _, ev := range []extract.Event{
		extract.Open("div", extract.Class("stats-body")),
		extract.Open("span", extract.Class("team-home teams")),
		extract.Text("not a link"),
		extract.Close("span"),
		extract.Open("a"),
		extract.Text("stray link"),
		extract.Close("a"),
	} {
		ex.Handle(ev)
	}
	if n := len(ex.Batch().Home); n != 0 {
		t.Fatalf("expected no captures, got %d", n)
	}
}

func TestKickoffAppendsPerTextEvent(t *testing.T) {
	ex := extract.New(extract.DefaultLayout())
	for _, ev := range []extract.Event{
		extract.Open("div", extract.Class("stats-body")),
		extract.Open("td", extract.Class("kickoff")),
		extract.Text("15"),
		extract.Open("b"),
		extract.Text(":00"),
		extract.Close("b"),
		extract.Close("td"),
	} {
		ex.Handle(ev)
	}
	got := ex.Batch().Kickoffs
	if len(got) != 2 || got[0] != "15" || got[1] != ":00" {
		t.Fatalf("expected one entry per text event, got %q", got)
	}
}

func TestKickoffOutsideBodyIgnored(t *testing.T) {
	ex := extract.New(extract.DefaultLayout())
	for _, ev := range []extract.Event{
		extract.Open("td", extract.Class("kickoff")),
		extract.Open("div", extract.Class("stats-body")),
		extract.Text("15:00"),
	} {
		ex.Handle(ev)
	}
	if n := len(ex.Batch().Kickoffs); n != 0 {
		t.Fatalf("kickoff cell opened outside body should not capture, got %d", n)
	}
}

func TestBlankLabelsAreKept(t *testing.T) {
	ex := extract.New(extract.DefaultLayout())
	for _, ev := range []extract.Event{
		extract.Open("div", extract.Class("stats-body")),
		extract.Open("span", extract.Class("score")),
		extract.Open("abbr"),
		extract.Text("  \n "),
	} {
		ex.Handle(ev)
	}
	got := ex.Batch().Scores
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("expected one blank score, got %q", got)
	}
}

func TestCaptureStateMachine(t *testing.T) {
	c := extract.NewCapture("span", "score", "abbr", true)
	if c.Accept() {
		t.Fatalf("idle capture should not accept")
	}
	c.Open("abbr", nil)
	if c.State() != extract.StateIdle {
		t.Fatalf("inner tag must not open from idle, got %s", c.State())
	}
	c.Open("span", []extract.Attr{extract.Class("  score ")})
	if c.State() != extract.StateOuter {
		t.Fatalf("expected outer, got %s", c.State())
	}
	c.Open("abbr", nil)
	if !c.Accept() {
		t.Fatalf("expected capture at inner stage")
	}
	if c.State() != extract.StateIdle {
		t.Fatalf("single capture should return to idle, got %s", c.State())
	}
	c.Open("span", []extract.Attr{extract.Class("score-extra")})
	if c.State() != extract.StateIdle {
		t.Fatalf("class match must be exact, got %s", c.State())
	}
}

func TestRegionDepth(t *testing.T) {
	r := extract.NewRegion("div", "stats-body")
	r.Open("div", nil)
	if r.Active() {
		t.Fatalf("plain div must not open region")
	}
	r.Open("div", []extract.Attr{extract.Class("stats-body")})
	r.Open("div", nil)
	r.Open("section", nil)
	if r.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", r.Depth())
	}
	r.Close("div")
	if !r.Active() {
		t.Fatalf("nested close must not exit region")
	}
	r.Close("div")
	if r.Active() {
		t.Fatalf("matching close must exit region")
	}
}

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="nav"><span class="team-home teams"><a>Header</a></span></div>
<div class="stats-body">
  <h2 class="table-header">Saturday 13th August 2016</h2>
  <div class="fixture">
    <span class="team-home teams"><a href="/hull">Hull</a></span>
    <span class="score"><abbr title="Score">2-1</abbr></span>
    <span class="team-away teams"><a href="/leicester">Leicester</a></span>
  </div>
  <div class="fixture">
    <span class="team-home teams"><a href="/burnley">Burnley</a></span>
    <span class="score"><abbr title="Score">0-1</abbr></span>
    <span class="team-away teams"><a href="/swansea">Swansea</a></span>
  </div>
  <br/>
  <h2 class="table-header">Sunday 14th August 2016</h2>
  <div class="fixture">
    <span class="team-home  teams"><a href="/arsenal">Arsenal</a></span>
    <span class="score"><abbr title="Score">3-4</abbr></span>
    <span class="team-away teams"><a href="/liverpool">Liverpool</a></span>
  </div>
</div>
<div><span class="team-away teams"><a>Footer</a></span></div>
</body></html>`

func TestParseDocument(t *testing.T) {
	batch, err := extract.Parse(strings.NewReader(resultsPage), extract.Layout{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := strings.Join(batch.Home, ","); got != "Hull,Burnley,Arsenal" {
		t.Fatalf("home = %s", got)
	}
	if got := strings.Join(batch.Away, ","); got != "Leicester,Swansea,Liverpool" {
		t.Fatalf("away = %s", got)
	}
	if got := strings.Join(batch.Scores, ","); got != "2-1,0-1,3-4" {
		t.Fatalf("scores = %s", got)
	}
	if batch.Dates[1] != "Saturday 13th August 2016" || batch.Dates[2] != "Sunday 14th August 2016" {
		t.Fatalf("dates = %q", batch.Dates)
	}
	if len(batch.Kickoffs) != 0 {
		t.Fatalf("results page has no kickoffs, got %q", batch.Kickoffs)
	}
}

func TestParseReturnsBatchOnMismatch(t *testing.T) {
	doc := `<div class="stats-body"><span class="team-home teams"><a>Hull</a></span></div>`
	batch, err := extract.Parse(strings.NewReader(doc), extract.DefaultLayout())
	if !errors.Is(err, extract.ErrCountMismatch) {
		t.Fatalf("expected ErrCountMismatch, got %v", err)
	}
	if batch == nil || batch.Len() != 1 {
		t.Fatalf("expected partial batch, got %+v", batch)
	}
}
