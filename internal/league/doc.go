// Package league holds the static lookup data the normalizer validates
// against: the teams recognised in a competition (short code plus accepted
// display names) and the English month names used by dated headings.
//
// Tables are immutable once built. Callers construct them from configuration
// (or use Default) and inject them wherever names are resolved, which lets
// tests substitute a smaller league.
package league
