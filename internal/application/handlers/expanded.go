package handlers

import (
	"sort"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// ExpandedSet tracks which hierarchy nodes a view shows expanded.
// It is owned by one view and is not safe for concurrent use.
type ExpandedSet struct {
	ids map[string]bool
}

// NewExpandedSet creates a set with the given ids expanded.
func NewExpandedSet(ids ...string) *ExpandedSet {
	s := &ExpandedSet{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = true
		}
	}
	return s
}

// Toggle flips the state of id and reports whether it is now expanded.
func (s *ExpandedSet) Toggle(id string) bool {
	if s.ids[id] {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = true
	return true
}

// IsExpanded reports whether id is expanded.
func (s *ExpandedSet) IsExpanded(id string) bool {
	return s.ids[id]
}

// ExpandAll expands every node reachable from the forest roots.
func (s *ExpandedSet) ExpandAll(forest entities.Forest) {
	seen := make(map[*entities.HierarchyNode]bool)
	var walk func(n *entities.HierarchyNode)
	walk = func(n *entities.HierarchyNode) {
		if seen[n] {
			return
		}
		seen[n] = true
		s.ids[n.ID] = true
		for _, c := range n.ChildrenNodes {
			walk(c)
		}
	}
	for _, r := range forest.Roots {
		walk(r)
	}
}

// CollapseAll clears the set.
func (s *ExpandedSet) CollapseAll() {
	clear(s.ids)
}

// IDs returns the expanded ids in sorted order.
func (s *ExpandedSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
