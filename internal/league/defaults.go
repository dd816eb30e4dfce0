package league

// PremierLeague2016 is the 2016/17 Premier League as spelled by the fixtures
// and odds pages.
var PremierLeague2016 = []Member{
	{Code: "ARS", Names: []string{"Arsenal"}},
	{Code: "BOU", Names: []string{"Bournemouth"}},
	{Code: "BUR", Names: []string{"Burnley"}},
	{Code: "CHE", Names: []string{"Chelsea"}},
	{Code: "CRY", Names: []string{"Crystal Palace"}},
	{Code: "EVE", Names: []string{"Everton"}},
	{Code: "HUL", Names: []string{"Hull"}},
	{Code: "LEI", Names: []string{"Leicester"}},
	{Code: "LIV", Names: []string{"Liverpool"}},
	{Code: "MCI", Names: []string{"Man City"}},
	{Code: "MUN", Names: []string{"Man Utd"}},
	{Code: "MID", Names: []string{"Middlesbrough"}},
	{Code: "SOU", Names: []string{"Southampton"}},
	{Code: "STK", Names: []string{"Stoke"}},
	{Code: "SUN", Names: []string{"Sunderland"}},
	{Code: "SWA", Names: []string{"Swansea"}},
	{Code: "TOT", Names: []string{"Tottenham"}},
	{Code: "WAT", Names: []string{"Watford"}},
	{Code: "WBA", Names: []string{"West Brom"}},
	{Code: "WHU", Names: []string{"West Ham"}},
}

// Default returns the built-in Premier League table.
func Default() *Table {
	return MustTable("Premier League", PremierLeague2016)
}
