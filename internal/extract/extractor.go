package extract

import "strings"

// Extractor consumes an event stream and accumulates a Batch. It is not safe
// for concurrent use.
type Extractor struct {
	body    *Region
	date    *Capture
	home    *Capture
	away    *Capture
	kickoff *Capture
	score   *Capture

	currentDate string
	batch       Batch
}

// New returns an Extractor for the layout. Empty layout fields take their
// default values.
func New(layout Layout) *Extractor {
	l := layout.WithDefaults()
	return &Extractor{
		body:    NewRegion(l.BodyTag, l.BodyClass),
		date:    NewCapture(l.DateTag, l.DateClass, "", true),
		home:    NewCapture(l.HomeTag, l.HomeClass, l.TeamInnerTag, true),
		away:    NewCapture(l.AwayTag, l.AwayClass, l.TeamInnerTag, true),
		kickoff: NewCapture(l.KickoffTag, l.KickoffClass, "", false),
		score:   NewCapture(l.ScoreTag, l.ScoreClass, l.ScoreInnerTag, true),
	}
}

// Handle processes one event.
func (e *Extractor) Handle(ev Event) {
	switch ev.Kind {
	case EventOpen:
		e.open(ev.Name, ev.Attrs)
	case EventClose:
		e.close(ev.Name)
	case EventText:
		e.text(ev.Data)
	}
}

func (e *Extractor) open(name string, attrs []Attr) {
	e.body.Open(name, attrs)
	e.date.Open(name, attrs)
	e.home.Open(name, attrs)
	e.away.Open(name, attrs)
	if e.body.Active() {
		e.kickoff.Open(name, attrs)
	}
	e.score.Open(name, attrs)
}

func (e *Extractor) close(name string) {
	e.body.Close(name)
	e.date.Close(name)
	e.home.Close(name)
	e.away.Close(name)
	e.kickoff.Close(name)
	e.score.Close(name)
}

func (e *Extractor) text(data string) {
	if !e.body.Active() {
		return
	}
	value := strings.TrimSpace(data)
	if e.date.Accept() {
		e.currentDate = value
	}
	if e.home.Accept() {
		e.batch.Home = append(e.batch.Home, value)
		e.batch.Dates = append(e.batch.Dates, e.currentDate)
	}
	if e.away.Accept() {
		e.batch.Away = append(e.batch.Away, value)
	}
	if e.kickoff.Accept() {
		e.batch.Kickoffs = append(e.batch.Kickoffs, value)
	}
	if e.score.Accept() {
		e.batch.Scores = append(e.batch.Scores, value)
	}
}

// Batch returns the strings captured so far.
func (e *Extractor) Batch() *Batch { return &e.batch }

// InBody reports whether the stream is currently inside the results body.
func (e *Extractor) InBody() bool { return e.body.Active() }
