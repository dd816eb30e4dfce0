package league

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Member is a team recognised by the league.
type Member struct {
	Code  string
	Names []string
}

// Table resolves display names to members case-insensitively.
type Table struct {
	name    string
	members []Member
	byName  map[string]int
}

// NewTable validates the members and builds the lookup index. Codes must be
// three letters and unique; every member needs at least one name and names
// may not be shared between members.
func NewTable(name string, members []Member) (*Table, error) {
	if len(members) == 0 {
		return nil, errors.New("league table requires at least one member")
	}
	t := &Table{
		name:    strings.TrimSpace(name),
		members: make([]Member, 0, len(members)),
		byName:  make(map[string]int),
	}
	codes := make(map[string]struct{}, len(members))
	for _, m := range members {
		code := strings.ToUpper(strings.TrimSpace(m.Code))
		if len(code) != 3 {
			return nil, fmt.Errorf("league member code %q must be three letters", m.Code)
		}
		if _, dup := codes[code]; dup {
			return nil, fmt.Errorf("league member code %q listed twice", code)
		}
		codes[code] = struct{}{}

		names := make([]string, 0, len(m.Names))
		for _, n := range m.Names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			key := fold(n)
			if owner, taken := t.byName[key]; taken {
				return nil, fmt.Errorf("team name %q claimed by both %s and %s", n, t.members[owner].Code, code)
			}
			t.byName[key] = len(t.members)
			names = append(names, n)
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("league member %s has no names", code)
		}
		t.members = append(t.members, Member{Code: code, Names: names})
	}
	return t, nil
}

// MustTable is NewTable for static data; it panics on invalid input.
func MustTable(name string, members []Member) *Table {
	t, err := NewTable(name, members)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the competition name.
func (t *Table) Name() string { return t.name }

// Size returns the number of members.
func (t *Table) Size() int { return len(t.members) }

// Lookup returns the member whose names include name, ignoring case.
func (t *Table) Lookup(name string) (Member, bool) {
	idx, ok := t.byName[fold(name)]
	if !ok {
		return Member{}, false
	}
	m := t.members[idx]
	return Member{Code: m.Code, Names: append([]string(nil), m.Names...)}, true
}

// Code returns the short code for a display name.
func (t *Table) Code(name string) (string, bool) {
	idx, ok := t.byName[fold(name)]
	if !ok {
		return "", false
	}
	return t.members[idx].Code, true
}

// Members returns a copy of the members sorted by code.
func (t *Table) Members() []Member {
	out := make([]Member, len(t.members))
	for i, m := range t.members {
		out[i] = Member{Code: m.Code, Names: append([]string(nil), m.Names...)}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
