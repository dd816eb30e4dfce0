package extract

// Layout names the tags and classes that mark each field on a page.
type Layout struct {
	BodyTag   string `toml:"body_tag"`
	BodyClass string `toml:"body_class"`

	DateTag   string `toml:"date_tag"`
	DateClass string `toml:"date_class"`

	HomeTag      string `toml:"home_tag"`
	HomeClass    string `toml:"home_class"`
	AwayTag      string `toml:"away_tag"`
	AwayClass    string `toml:"away_class"`
	TeamInnerTag string `toml:"team_inner_tag"`

	KickoffTag   string `toml:"kickoff_tag"`
	KickoffClass string `toml:"kickoff_class"`

	ScoreTag      string `toml:"score_tag"`
	ScoreClass    string `toml:"score_class"`
	ScoreInnerTag string `toml:"score_inner_tag"`
}

// DefaultLayout returns the layout used by the fixtures and results pages.
func DefaultLayout() Layout {
	return Layout{
		BodyTag:       "div",
		BodyClass:     "stats-body",
		DateTag:       "h2",
		DateClass:     "table-header",
		HomeTag:       "span",
		HomeClass:     "team-home teams",
		AwayTag:       "span",
		AwayClass:     "team-away teams",
		TeamInnerTag:  "a",
		KickoffTag:    "td",
		KickoffClass:  "kickoff",
		ScoreTag:      "span",
		ScoreClass:    "score",
		ScoreInnerTag: "abbr",
	}
}

// WithDefaults fills empty fields from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&l.BodyTag, d.BodyTag)
	fill(&l.BodyClass, d.BodyClass)
	fill(&l.DateTag, d.DateTag)
	fill(&l.DateClass, d.DateClass)
	fill(&l.HomeTag, d.HomeTag)
	fill(&l.HomeClass, d.HomeClass)
	fill(&l.AwayTag, d.AwayTag)
	fill(&l.AwayClass, d.AwayClass)
	fill(&l.TeamInnerTag, d.TeamInnerTag)
	fill(&l.KickoffTag, d.KickoffTag)
	fill(&l.KickoffClass, d.KickoffClass)
	fill(&l.ScoreTag, d.ScoreTag)
	fill(&l.ScoreClass, d.ScoreClass)
	fill(&l.ScoreInnerTag, d.ScoreInnerTag)
	return l
}
