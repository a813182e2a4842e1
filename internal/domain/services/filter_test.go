package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

func names(list []entities.Member) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.Name)
	}
	return out
}

func TestApplyFilters_HasChildren(t *testing.T) {
	list := []entities.Member{
		{Name: "Anu", City: "Chennai", Children: []string{}},
		{Name: "Ravi", City: "Madurai", Children: []string{"x"}},
	}

	assert.Equal(t, []string{"Ravi"}, names(ApplyFilters(list, Criteria{HasChildren: HasChildrenYes})))
	assert.Equal(t, []string{"Anu"}, names(ApplyFilters(list, Criteria{HasChildren: HasChildrenNo})))
	assert.Equal(t, []string{"Anu", "Ravi"}, names(ApplyFilters(list, Criteria{HasChildren: FilterAll})))
}

func TestApplyFilters(t *testing.T) {
	list := []entities.Member{
		{Name: "Anu", SpouseName: "Karthik", City: "Chennai", State: "TN", District: "Chennai", ContactNumber: "98400 12345"},
		{Name: "Ravi", SpouseName: "Meena", City: "Madurai", State: "TN", District: "Madurai", Children: []string{"x"}},
		{Name: "Selvi", City: "Kochi", State: "Kerala", District: "Ernakulam", ContactNumber: "+91-ABC"},
		{Name: "Öztürk", City: "İzmir"},
		{},
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria keeps everything", Criteria{}, []string{"Anu", "Ravi", "Selvi", "Öztürk", ""}},
		{"all sentinels", Criteria{State: FilterAll, District: FilterAll, HasChildren: FilterAll}, []string{"Anu", "Ravi", "Selvi", "Öztürk", ""}},
		{"name case-insensitive", Criteria{SearchTerm: "ANU"}, []string{"Anu"}},
		{"spouse name", Criteria{SearchTerm: "meena"}, []string{"Ravi"}},
		{"city", Criteria{SearchTerm: "koch"}, []string{"Selvi"}},
		{"unicode folding", Criteria{SearchTerm: "öZTÜRK"}, []string{"Öztürk"}},
		{"contact substring", Criteria{SearchTerm: "12345"}, []string{"Anu"}},
		{"contact is case-sensitive", Criteria{SearchTerm: "+91-abc"}, []string{}},
		{"state exact", Criteria{State: "TN"}, []string{"Anu", "Ravi"}},
		{"state is not a substring match", Criteria{State: "T"}, []string{}},
		{"district", Criteria{District: "Ernakulam"}, []string{"Selvi"}},
		{"criteria are ANDed", Criteria{State: "TN", HasChildren: HasChildrenNo}, []string{"Anu"}},
		{"search and district", Criteria{SearchTerm: "a", District: "Madurai"}, []string{"Ravi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(ApplyFilters(list, tt.criteria)))
		})
	}
}

func TestFilterOptions(t *testing.T) {
	list := []entities.Member{
		{State: "TN", District: "Chennai"},
		{State: "Kerala", District: ""},
		{State: "TN", District: "Madurai"},
		{},
	}

	opts := FilterOptions(list)

	assert.Equal(t, []string{"TN", "Kerala"}, opts.States)
	assert.Equal(t, []string{"Chennai", "Madurai"}, opts.Districts)
	assert.Equal(t, Options{States: []string{}, Districts: []string{}}, FilterOptions(nil))
}
