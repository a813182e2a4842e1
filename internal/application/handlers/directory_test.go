package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

func setupDirectory(t *testing.T) (*DirectoryHandler, *fixture, map[string]string) {
	t.Helper()
	f := setupFixture(t)

	ids := map[string]string{}
	ids["ravi"] = f.addMember(t, entities.Member{Name: "Ravi", City: "Chennai", State: "Tamil Nadu", Latitude: "13.0827", Longitude: "80.2707"})
	ids["kumar"] = f.addMember(t, entities.Member{Name: "Kumar", City: "Chennai", State: "Tamil Nadu"})
	ids["anu"] = f.addMember(t, entities.Member{Name: "Anu", District: "Salem", State: "Tamil Nadu"})

	_, err := f.relations.Link(t.Context(), ids["ravi"], ids["kumar"], entities.RelationFather)
	require.NoError(t, err)

	return NewDirectoryHandler(f.members, f.relations, ""), f, ids
}

func TestDirectoryHandler_HandleTree(t *testing.T) {
	h, _, ids := setupDirectory(t)

	result, err := h.HandleTree(t.Context())

	require.NoError(t, err)
	assert.Len(t, result.Nodes, 3)
	assert.Equal(t, []string{ids["ravi"], ids["anu"]}, result.Roots)
	assert.Equal(t, 1, result.Nodes[ids["kumar"]].Level)
}

func TestDirectoryHandler_HandleFilter(t *testing.T) {
	h, _, _ := setupDirectory(t)

	result, err := h.HandleFilter(t.Context(), services.Criteria{SearchTerm: "chennai"})

	require.NoError(t, err)
	require.Len(t, result.Members, 2)
	assert.Equal(t, "Ravi", result.Members[0].Name)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, []string{"Tamil Nadu"}, result.Options.States)
	assert.Equal(t, []string{"Salem"}, result.Options.Districts)
}

func TestDirectoryHandler_HandleForest(t *testing.T) {
	h, _, ids := setupDirectory(t)

	result, err := h.HandleForest(t.Context(), services.Criteria{}, NewExpandedSet())

	require.NoError(t, err)
	require.Len(t, result.Roots, 2)
	assert.Equal(t, ids["ravi"], result.Roots[0].ID)
	assert.False(t, result.Roots[0].Expanded)
	assert.Equal(t, 1, result.Roots[0].ChildCount)
}

func TestDirectoryHandler_HandleForest_GroupsFilteredSet(t *testing.T) {
	h, _, ids := setupDirectory(t)

	result, err := h.HandleForest(t.Context(), services.Criteria{SearchTerm: "kumar"}, nil)

	require.NoError(t, err)
	require.Len(t, result.Roots, 1)
	assert.Equal(t, ids["kumar"], result.Roots[0].ID)
}

func TestDirectoryHandler_HandleAreas(t *testing.T) {
	h, _, _ := setupDirectory(t)

	areas, err := h.HandleAreas(t.Context(), services.Criteria{}, nil)

	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "Chennai, Tamil Nadu", areas[0].Area)
	require.Len(t, areas[0].Roots, 1)
	assert.Len(t, areas[0].Roots[0].ChildrenNodes, 1)
	assert.Equal(t, "Salem, Tamil Nadu", areas[1].Area)
}

func TestDirectoryHandler_HandleMap(t *testing.T) {
	h, _, ids := setupDirectory(t)

	markers, err := h.HandleMap(t.Context(), services.Criteria{})

	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, ids["ravi"], markers[0].MemberID)
	assert.InDelta(t, 13.0827, markers[0].Lat, 1e-9)
}

func TestDirectoryHandler_HandleCoordinates(t *testing.T) {
	h, _, _ := setupDirectory(t)

	c := h.HandleCoordinates("https://www.google.com/maps/place/X/@12.97,77.59,17z")
	require.NotNil(t, c)
	assert.Equal(t, "12.97", c.Lat)

	assert.Nil(t, h.HandleCoordinates("https://maps.app.goo.gl/abc"))
}

func TestDirectoryHandler_StoreError(t *testing.T) {
	h, f, _ := setupDirectory(t)
	f.store.ListErr = assert.AnError

	_, err := h.HandleTree(t.Context())
	require.ErrorIs(t, err, assert.AnError)

	_, err = h.HandleAreas(t.Context(), services.Criteria{}, nil)
	require.ErrorIs(t, err, assert.AnError)
}
