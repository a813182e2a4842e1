package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

func rootIDs(f entities.Forest) []string {
	ids := make([]string, 0, len(f.Roots))
	for _, r := range f.Roots {
		ids = append(ids, r.ID)
	}
	return ids
}

func childIDs(n *entities.HierarchyNode) []string {
	ids := make([]string, 0, len(n.ChildrenNodes))
	for _, c := range n.ChildrenNodes {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestBuildForest(t *testing.T) {
	list := []entities.Member{
		{ID: "gp", Name: "Grandpa", Children: []string{"dad"}},
		{ID: "dad", Name: "Dad", Children: []string{"kid", "missing"}},
		{ID: "kid", Name: "Kid"},
		{ID: "solo", Name: "Solo"},
	}

	forest := BuildForest(list)

	assert.Equal(t, []string{"gp", "solo"}, rootIDs(forest))
	require.Len(t, forest.Roots[0].ChildrenNodes, 1)
	dad := forest.Roots[0].ChildrenNodes[0]
	assert.Equal(t, "Dad", dad.Name)
	assert.Equal(t, []string{"kid"}, childIDs(dad))
	assert.Empty(t, forest.Roots[1].ChildrenNodes)
	assert.NotNil(t, forest.Roots[1].ChildrenNodes)
}

func TestBuildForest_SharedChild(t *testing.T) {
	list := []entities.Member{
		{ID: "mom", Children: []string{"kid"}},
		{ID: "dad", Children: []string{"kid"}},
		{ID: "kid"},
	}

	forest := BuildForest(list)

	assert.Equal(t, []string{"mom", "dad"}, rootIDs(forest))
	assert.Same(t, forest.Roots[0].ChildrenNodes[0], forest.Roots[1].ChildrenNodes[0])
}

func TestBuildForest_EveryMemberIsRootOrChild(t *testing.T) {
	list := []entities.Member{
		{ID: "a", Children: []string{"b", "c"}},
		{ID: "b", Children: []string{"d"}},
		{ID: "c"},
		{ID: "d"},
		{ID: "e", Children: []string{"c"}},
	}

	forest := BuildForest(list)
	roots := make(map[string]bool)
	for _, r := range forest.Roots {
		roots[r.ID] = true
	}
	referenced := make(map[string]bool)
	for _, m := range list {
		for _, c := range m.Children {
			referenced[c] = true
		}
	}

	for _, m := range list {
		assert.NotEqual(t, roots[m.ID], referenced[m.ID], m.ID)
	}
}

func TestBuildForest_CycleHasNoRoots(t *testing.T) {
	list := []entities.Member{
		{ID: "a", Children: []string{"b"}},
		{ID: "b", Children: []string{"a"}},
	}

	forest := BuildForest(list)

	assert.Empty(t, forest.Roots)
}

func TestBuildForest_DoesNotShareInputChildren(t *testing.T) {
	list := []entities.Member{{ID: "a", Children: []string{"b"}}, {ID: "b"}}

	forest := BuildForest(list)
	forest.Roots[0].Children[0] = "changed"

	assert.Equal(t, "b", list[0].Children[0])
}

func TestAreaLabel(t *testing.T) {
	tests := []struct {
		name   string
		member entities.Member
		want   string
	}{
		{"all parts", entities.Member{City: "Adyar", District: "Chennai", State: "TN"}, "Adyar, Chennai, TN"},
		{"missing district", entities.Member{City: "Chennai", State: "TN"}, "Chennai, TN"},
		{"state only", entities.Member{State: "Kerala"}, "Kerala"},
		{"nothing set", entities.Member{}, "No Area Set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreaLabel(&tt.member))
		})
	}
}

func TestGroupByArea(t *testing.T) {
	list := []entities.Member{
		{ID: "1", City: "Chennai", State: "TN", Children: []string{"2", "3"}},
		{ID: "2", City: "Chennai", State: "TN"},
		{ID: "3", City: "Madurai", State: "TN"},
		{ID: "4"},
		{ID: "5", City: "Chennai", State: "TN"},
	}

	areas := GroupByArea(list)

	require.Len(t, areas, 3)
	assert.Equal(t, "Chennai, TN", areas[0].Area)
	assert.Equal(t, []string{"1", "5"}, rootIDs(areas[0].Forest))
	assert.Equal(t, []string{"2"}, childIDs(areas[0].Forest.Roots[0]))

	// Child ids outside the area do not resolve, and do not demote the member.
	assert.Equal(t, "Madurai, TN", areas[1].Area)
	assert.Equal(t, []string{"3"}, rootIDs(areas[1].Forest))

	assert.Equal(t, "No Area Set", areas[2].Area)
	assert.Equal(t, []string{"4"}, rootIDs(areas[2].Forest))
}

func TestGroupByArea_Empty(t *testing.T) {
	assert.Empty(t, GroupByArea(nil))
}
