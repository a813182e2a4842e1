package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

func init() {
	color.NoColor = true
}

func TestPrintTree(t *testing.T) {
	members := []entities.Member{
		{ID: "g", Name: "Grandpa"},
		{ID: "p", Name: "Parent", SpouseName: "Lakshmi"},
		{ID: "u", Name: "Uncle"},
		{ID: "c", Name: "Child"},
	}
	relations := []entities.Relation{
		{ID: "r1", Member1ID: "g", Member2ID: "p", RelationType: entities.RelationFather},
		{ID: "r2", Member1ID: "g", Member2ID: "u", RelationType: entities.RelationFather},
		{ID: "r3", Member1ID: "p", Member2ID: "c", RelationType: entities.RelationMother},
		{ID: "r4", Member1ID: "p", Member2ID: "u", RelationType: entities.RelationBrother},
	}
	nodes := services.BuildFamilyTree(members, relations)
	result := &handlers.TreeResult{Nodes: nodes, Roots: services.TreeRoots(members, nodes)}

	var buf bytes.Buffer
	printTree(&buf, result)

	want := strings.Join([]string{
		"Grandpa [level 0]",
		"├── Parent 👨 Father & Lakshmi [level 1] siblings: Uncle",
		"│   └── Child 👩 Mother [level 2]",
		"└── Uncle 👨 Father [level 1]",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPrintTree_Cycle(t *testing.T) {
	result := &handlers.TreeResult{
		Nodes: map[string]*entities.TreeNode{
			"a": {MemberID: "a", Name: "A", Children: []entities.RelationLink{{ID: "b", Relation: entities.RelationFather}}},
			"b": {MemberID: "b", Name: "B", Level: 1, Children: []entities.RelationLink{{ID: "a", Relation: entities.RelationSon}}},
		},
		Roots: []string{"a"},
	}

	var buf bytes.Buffer
	printTree(&buf, result)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[2], "(repeats)")
}

func TestPrintTree_Empty(t *testing.T) {
	var buf bytes.Buffer
	printTree(&buf, &handlers.TreeResult{})
	assert.Equal(t, "No members found.\n", buf.String())
}

func TestPrintForest(t *testing.T) {
	forest := services.BuildForest([]entities.Member{
		{ID: "g", Name: "Grandpa", Children: []string{"p"}},
		{ID: "p", Name: "Parent", Children: []string{"c"}},
		{ID: "c", Name: "Child"},
	})

	var buf bytes.Buffer
	printForest(&buf, handlers.BuildForestView(forest, handlers.NewExpandedSet("g")), "")

	want := strings.Join([]string{
		"▾ Grandpa g",
		"  ▸ Parent (1 children) p",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}
