package handlers

import (
	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// NodeView is a hierarchy node prepared for display.
type NodeView struct {
	entities.Member
	Expanded      bool       `json:"expanded"`
	ChildCount    int        `json:"childCount"`
	Cycle         bool       `json:"cycle,omitempty"` // already shown on this path; children omitted
	ChildrenNodes []NodeView `json:"childrenNodes"`
}

// AreaView is the forest view of one area.
type AreaView struct {
	Area  string     `json:"area"`
	Roots []NodeView `json:"roots"`
}

// BuildForestView walks the forest from its roots. With a nil set every node
// is expanded; otherwise only the children of expanded nodes are included.
// A node that is already on the current path is emitted once with Cycle set.
func BuildForestView(forest entities.Forest, expanded *ExpandedSet) []NodeView {
	onPath := make(map[string]bool)

	var walk func(n *entities.HierarchyNode) NodeView
	walk = func(n *entities.HierarchyNode) NodeView {
		v := NodeView{
			Member:        n.Member,
			ChildCount:    len(n.ChildrenNodes),
			ChildrenNodes: []NodeView{},
		}
		if onPath[n.ID] {
			v.Cycle = true
			return v
		}
		v.Expanded = expanded == nil || expanded.IsExpanded(n.ID)
		if !v.Expanded {
			return v
		}

		onPath[n.ID] = true
		for _, c := range n.ChildrenNodes {
			v.ChildrenNodes = append(v.ChildrenNodes, walk(c))
		}
		delete(onPath, n.ID)
		return v
	}

	views := make([]NodeView, 0, len(forest.Roots))
	for _, r := range forest.Roots {
		views = append(views, walk(r))
	}
	return views
}
