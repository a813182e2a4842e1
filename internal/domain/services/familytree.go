package services

import (
	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// BuildFamilyTree converts members and relation edges into tree nodes keyed by
// member id.
//
// Father, Mother, Son and Daughter make member1 the parent of member2.
// Brother and Sister add member2 to member1's siblings only; the mirror link
// is not created. Other types, and edges naming an unknown member, are skipped.
//
// Levels are assigned by a depth-first walk from every root (a node with no
// parent edges). A child sits one level below its parent, a sibling on the
// same level, and a node reached by several paths keeps the highest level.
// Each walk has its own visited set, so cyclic data terminates.
func BuildFamilyTree(members []entities.Member, relations []entities.Relation) map[string]*entities.TreeNode {
	tree := make(map[string]*entities.TreeNode, len(members))
	for i := range members {
		m := &members[i]
		tree[m.ID] = &entities.TreeNode{
			MemberID:   m.ID,
			Name:       m.Name,
			SpouseName: m.SpouseName,
			Children:   []entities.RelationLink{},
			Parents:    []entities.RelationLink{},
			Siblings:   []entities.RelationLink{},
		}
	}

	for i := range relations {
		rel := &relations[i]
		from, okFrom := tree[rel.Member1ID]
		to, okTo := tree[rel.Member2ID]
		if !okFrom || !okTo {
			continue
		}

		switch {
		case rel.RelationType.IsParental():
			from.Children = append(from.Children, entities.RelationLink{ID: rel.Member2ID, Relation: rel.RelationType})
			to.Parents = append(to.Parents, entities.RelationLink{ID: rel.Member1ID, Relation: rel.RelationType})
		case rel.RelationType.IsSibling():
			from.Siblings = append(from.Siblings, entities.RelationLink{ID: rel.Member2ID, Relation: rel.RelationType})
		}
	}

	for i := range members {
		root := tree[members[i].ID]
		if root.IsRoot() {
			assignLevels(tree, root.MemberID, 0, make(map[string]bool))
		}
	}

	return tree
}

func assignLevels(tree map[string]*entities.TreeNode, id string, level int, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	node := tree[id]
	if level > node.Level {
		node.Level = level
	}
	for _, child := range node.Children {
		assignLevels(tree, child.ID, level+1, visited)
	}
	for _, sibling := range node.Siblings {
		assignLevels(tree, sibling.ID, level, visited)
	}
}

// TreeRoots returns the ids of root nodes in member order.
func TreeRoots(members []entities.Member, tree map[string]*entities.TreeNode) []string {
	roots := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for i := range members {
		id := members[i].ID
		if node, ok := tree[id]; ok && node.IsRoot() && !seen[id] {
			seen[id] = true
			roots = append(roots, id)
		}
	}
	return roots
}
