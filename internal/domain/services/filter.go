package services

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// FilterAll disables a criterion.
const FilterAll = "all"

// Values accepted by Criteria.HasChildren.
const (
	HasChildrenYes = "yes"
	HasChildrenNo  = "no"
)

// Criteria narrows the member list. Empty values behave like FilterAll.
type Criteria struct {
	SearchTerm  string `json:"searchTerm"`
	State       string `json:"state"`
	District    string `json:"district"`
	HasChildren string `json:"hasChildren"`
}

// Options lists the distinct values available to the state and district pickers.
type Options struct {
	States    []string `json:"states"`
	Districts []string `json:"districts"`
}

// ApplyFilters returns the members matching every criterion, preserving order.
//
// The search term matches name, spouse name or city case-insensitively, and
// the contact number as an exact substring.
func ApplyFilters(members []entities.Member, c Criteria) []entities.Member {
	fold := cases.Fold()
	term := fold.String(c.SearchTerm)

	out := make([]entities.Member, 0, len(members))
	for i := range members {
		m := &members[i]
		if c.SearchTerm != "" && !matchesSearch(fold, m, term, c.SearchTerm) {
			continue
		}
		if active(c.State) && m.State != c.State {
			continue
		}
		if active(c.District) && m.District != c.District {
			continue
		}
		switch c.HasChildren {
		case HasChildrenYes:
			if !m.HasChildren() {
				continue
			}
		case HasChildrenNo:
			if m.HasChildren() {
				continue
			}
		}
		out = append(out, *m)
	}
	return out
}

func matchesSearch(fold cases.Caser, m *entities.Member, folded, raw string) bool {
	for _, field := range []string{m.Name, m.SpouseName, m.City} {
		if field != "" && strings.Contains(fold.String(field), folded) {
			return true
		}
	}
	return m.ContactNumber != "" && strings.Contains(m.ContactNumber, raw)
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// FilterOptions collects the distinct non-empty states and districts in
// order of first appearance.
func FilterOptions(members []entities.Member) Options {
	opts := Options{States: []string{}, Districts: []string{}}
	seenStates := make(map[string]bool)
	seenDistricts := make(map[string]bool)
	for i := range members {
		if s := members[i].State; s != "" && !seenStates[s] {
			seenStates[s] = true
			opts.States = append(opts.States, s)
		}
		if d := members[i].District; d != "" && !seenDistricts[d] {
			seenDistricts[d] = true
			opts.Districts = append(opts.Districts, d)
		}
	}
	return opts
}
