package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

var (
	nameColor  = color.New(color.Bold)
	labelColor = color.New(color.FgCyan)
	metaColor  = color.New(color.FgHiBlack)
	warnColor  = color.New(color.FgYellow)
)

func newTreeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the relation tree",
		Long:  "Prints the family tree built from relation edges, one branch per root member.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validOutputs, output) {
				return fmt.Errorf("invalid output %q, valid outputs: %v", output, validOutputs)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Directory.HandleTree(cmd.Context())
				if err != nil {
					return fmt.Errorf("building tree: %w", err)
				}
				if output == "json" {
					return printJSON(result)
				}
				printTree(os.Stdout, result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")

	return cmd
}

// printTree writes each root and its descendants. A member already on the
// current branch is printed once more and not descended into.
func printTree(w io.Writer, result *handlers.TreeResult) {
	if len(result.Roots) == 0 {
		fmt.Fprintln(w, "No members found.")
		return
	}

	onPath := make(map[string]bool)
	var walk func(id string, rel entities.RelationType, prefix string, last, top bool)
	walk = func(id string, rel entities.RelationType, prefix string, last, top bool) {
		node, ok := result.Nodes[id]
		if !ok {
			return
		}

		branch, next := "", ""
		if !top {
			branch, next = "├── ", "│   "
			if last {
				branch, next = "└── ", "    "
			}
		}

		line := prefix + branch + nameColor.Sprint(node.Name)
		if rel != "" {
			line += " " + labelColor.Sprint(rel.Label())
		}
		if node.SpouseName != "" {
			line += metaColor.Sprintf(" & %s", node.SpouseName)
		}
		line += metaColor.Sprintf(" [level %d]", node.Level)
		if len(node.Siblings) > 0 {
			line += metaColor.Sprintf(" siblings: %s", siblingNames(result, node.Siblings))
		}
		if onPath[id] {
			fmt.Fprintln(w, line+warnColor.Sprint(" (repeats)"))
			return
		}
		fmt.Fprintln(w, line)

		onPath[id] = true
		for i, c := range node.Children {
			walk(c.ID, c.Relation, prefix+next, i == len(node.Children)-1, false)
		}
		delete(onPath, id)
	}

	for _, id := range result.Roots {
		walk(id, "", "", true, true)
	}
}

func siblingNames(result *handlers.TreeResult, links []entities.RelationLink) string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		if n, ok := result.Nodes[l.ID]; ok {
			names = append(names, n.Name)
		}
	}
	return strings.Join(names, ", ")
}

type forestFlags struct {
	filters filterFlags
	expand  []string
	all     bool
	output  string
}

func (f *forestFlags) register(cmd *cobra.Command) {
	f.filters.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&f.expand, "expand", nil, "Member ids to show expanded")
	cmd.Flags().BoolVar(&f.all, "all", false, "Expand every member")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "Output format (text, json)")
}

// expanded returns the set of expanded ids. Nil expands everything.
func (f *forestFlags) expanded() *handlers.ExpandedSet {
	if f.all {
		return nil
	}
	return handlers.NewExpandedSet(f.expand...)
}

func newForestCmd() *cobra.Command {
	var flags forestFlags

	cmd := &cobra.Command{
		Use:   "forest",
		Short: "Show the children hierarchy",
		Long: `Prints the hierarchy built from each member's children list.
Only roots are shown unless members are expanded.

Examples:
  addressbook forest --all
  addressbook forest --expand 5b1c...,9e2a...
  addressbook forest --state Kerala --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validOutputs, flags.output) {
				return fmt.Errorf("invalid output %q, valid outputs: %v", flags.output, validOutputs)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Directory.HandleForest(cmd.Context(), flags.filters.criteria(), flags.expanded())
				if err != nil {
					return fmt.Errorf("building forest: %w", err)
				}
				if flags.output == "json" {
					return printJSON(result)
				}
				printForest(os.Stdout, result.Roots, "")
				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newAreasCmd() *cobra.Command {
	var flags forestFlags

	cmd := &cobra.Command{
		Use:   "areas",
		Short: "Show the hierarchy grouped by area",
		Long:  "Groups members by city, district and state and prints one hierarchy per area.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validOutputs, flags.output) {
				return fmt.Errorf("invalid output %q, valid outputs: %v", flags.output, validOutputs)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				areas, err := d.Directory.HandleAreas(cmd.Context(), flags.filters.criteria(), flags.expanded())
				if err != nil {
					return fmt.Errorf("grouping by area: %w", err)
				}
				if flags.output == "json" {
					return printJSON(areas)
				}
				if len(areas) == 0 {
					fmt.Println("No members found.")
					return nil
				}
				for _, a := range areas {
					labelColor.Printf("📍 %s\n", a.Area)
					printForest(os.Stdout, a.Roots, "  ")
					fmt.Println()
				}
				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}

// printForest writes hierarchy views. Views are already cut at cycles.
func printForest(w io.Writer, views []handlers.NodeView, indent string) {
	for _, v := range views {
		marker := "•"
		switch {
		case v.Cycle:
			marker = "↺"
		case v.ChildCount > 0 && v.Expanded:
			marker = "▾"
		case v.ChildCount > 0:
			marker = "▸"
		}

		line := fmt.Sprintf("%s%s %s", indent, marker, nameColor.Sprint(v.Name))
		if v.SpouseName != "" {
			line += metaColor.Sprintf(" & %s", v.SpouseName)
		}
		if v.ChildCount > 0 && !v.Expanded && !v.Cycle {
			line += metaColor.Sprintf(" (%d children)", v.ChildCount)
		}
		line += metaColor.Sprintf(" %s", v.ID)
		fmt.Fprintln(w, line)

		printForest(w, v.ChildrenNodes, indent+"  ")
	}
}
