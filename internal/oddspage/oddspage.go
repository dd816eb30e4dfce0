// Package oddspage reads the odds listing page into the flat name and quote
// lists consumed by the reconciler.
package oddspage

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"matchday/internal/reconcile"
)

// Default selectors for the odds page.
const (
	DefaultNameSelector  = "span.fixtures-bet-name"
	DefaultQuoteSelector = "span.odds"
)

// Selectors locates name and quote entries on the page.
type Selectors struct {
	Names  string `toml:"name_selector"`
	Quotes string `toml:"quote_selector"`
}

// DefaultSelectors returns the selectors for the odds page.
func DefaultSelectors() Selectors {
	return Selectors{Names: DefaultNameSelector, Quotes: DefaultQuoteSelector}
}

func (s Selectors) withDefaults() Selectors {
	if strings.TrimSpace(s.Names) == "" {
		s.Names = DefaultNameSelector
	}
	if strings.TrimSpace(s.Quotes) == "" {
		s.Quotes = DefaultQuoteSelector
	}
	return s
}

// Parse collects the trimmed text of every matching element in document
// order. Size checks are left to the reconciler.
func Parse(r io.Reader, sel Selectors) (reconcile.Listing, error) {
	sel = sel.withDefaults()
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return reconcile.Listing{}, fmt.Errorf("parse odds page: %w", err)
	}
	return reconcile.Listing{
		Names:  texts(doc, sel.Names),
		Quotes: texts(doc, sel.Quotes),
	}, nil
}

func texts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
