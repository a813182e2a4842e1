package entities

// RelationLink points at another member through a typed relation.
type RelationLink struct {
	ID       string       `json:"id"`
	Relation RelationType `json:"relation"`
}

// TreeNode is a member's position in the relation-edge family tree.
// It is derived on every load and never persisted.
type TreeNode struct {
	MemberID   string         `json:"memberId"`
	Name       string         `json:"name"`
	SpouseName string         `json:"spouseName"`
	Children   []RelationLink `json:"children"`
	Parents    []RelationLink `json:"parents"`
	Siblings   []RelationLink `json:"siblings"`
	Level      int            `json:"level"`
}

// IsRoot reports whether the node has no parent edges.
func (n *TreeNode) IsRoot() bool {
	return len(n.Parents) == 0
}

// HierarchyNode is a member decorated with the nodes of its embedded children.
// A child listed by several parents is shared between them.
type HierarchyNode struct {
	Member
	ChildrenNodes []*HierarchyNode `json:"-"`
}

// Forest is a set of rooted hierarchies.
type Forest struct {
	Roots []*HierarchyNode
}

// AreaForest is the forest built from the members of one area.
type AreaForest struct {
	Area   string
	Forest Forest
}

// NoAreaLabel groups members with no city, district or state.
const NoAreaLabel = "No Area Set"
