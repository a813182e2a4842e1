package services

import (
	"strings"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// BuildForest builds hierarchies from each member's embedded children list.
//
// A member is a root iff no member lists its id as a child. Every resolvable
// child id adds the child's node under its parent, so a member listed by two
// parents appears under both. This is a single pass; cycles in the children
// data are not broken here and walkers must guard against them.
func BuildForest(members []entities.Member) entities.Forest {
	nodes := make(map[string]*entities.HierarchyNode, len(members))
	childIDs := make(map[string]bool)

	for i := range members {
		m := members[i]
		m.Children = append([]string{}, m.Children...)
		nodes[m.ID] = &entities.HierarchyNode{Member: m, ChildrenNodes: []*entities.HierarchyNode{}}
		for _, childID := range m.Children {
			childIDs[childID] = true
		}
	}

	forest := entities.Forest{Roots: []*entities.HierarchyNode{}}
	for i := range members {
		node := nodes[members[i].ID]
		if !childIDs[members[i].ID] {
			forest.Roots = append(forest.Roots, node)
		}
		for _, childID := range members[i].Children {
			if child, ok := nodes[childID]; ok {
				node.ChildrenNodes = append(node.ChildrenNodes, child)
			}
		}
	}
	return forest
}

// AreaLabel joins the non-empty city, district and state with ", ",
// or returns entities.NoAreaLabel when all three are empty.
func AreaLabel(m *entities.Member) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{m.City, m.District, m.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return entities.NoAreaLabel
	}
	return strings.Join(parts, ", ")
}

// GroupByArea partitions members by area label and builds a forest per area.
// Areas are returned in order of first appearance.
func GroupByArea(members []entities.Member) []entities.AreaForest {
	var order []string
	groups := make(map[string][]entities.Member)
	for i := range members {
		label := AreaLabel(&members[i])
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], members[i])
	}

	result := make([]entities.AreaForest, 0, len(order))
	for _, label := range order {
		result = append(result, entities.AreaForest{
			Area:   label,
			Forest: BuildForest(groups[label]),
		})
	}
	return result
}
