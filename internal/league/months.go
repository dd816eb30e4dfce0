package league

import (
	"strings"
	"time"
)

// Months maps lower-case month names to calendar months.
type Months map[string]time.Month

// EnglishMonths returns the full English month names.
func EnglishMonths() Months {
	m := make(Months, 12)
	for month := time.January; month <= time.December; month++ {
		m[strings.ToLower(month.String())] = month
	}
	return m
}

// Lookup resolves a month name ignoring case and surrounding whitespace.
func (m Months) Lookup(name string) (time.Month, bool) {
	month, ok := m[strings.ToLower(strings.TrimSpace(name))]
	return month, ok
}
