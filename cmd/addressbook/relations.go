package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

func newLinkCmd() *cobra.Command {
	types := make([]string, len(entities.RelationTypes))
	for i, t := range entities.RelationTypes {
		types[i] = string(t)
	}

	return &cobra.Command{
		Use:   "link <member1-id> <type> <member2-id>",
		Short: "Link two members",
		Long: fmt.Sprintf(`Records that member1 is <type> of member2. An existing relation
between the same two members, in the same order, is replaced.

Valid relation types:
  %s

Examples:
  addressbook link 5b1c... Father 9e2a...
  addressbook link 5b1c... sister 77fd...`, strings.Join(types, ", ")),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				rel, err := d.Relations.HandleLink(cmd.Context(), args[0], args[1], args[2])
				if err != nil {
					return fmt.Errorf("linking members: %w", err)
				}
				fmt.Printf("Created relation: %s\n", rel.ID)
				fmt.Printf("  %s -[%s]-> %s\n", rel.Member1ID, rel.RelationType.Label(), rel.Member2ID)
				return nil
			})
		},
	}
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <relation-id>",
		Short: "Remove a relation",
		Long:  "Deletes a relation by its ID. Embedded children lists are left as they are.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if err := d.Relations.HandleUnlink(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("removing relation: %w", err)
				}
				fmt.Printf("Deleted relation: %s\n", args[0])
				return nil
			})
		},
	}
}

func newRelationsCmd() *cobra.Command {
	var (
		member string
		output string
	)

	cmd := &cobra.Command{
		Use:   "relations",
		Short: "List relations",
		Long: `Lists relation edges with member names.

Examples:
  addressbook relations
  addressbook relations --member 5b1c...
  addressbook relations --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validOutputs, output) {
				return fmt.Errorf("invalid output %q, valid outputs: %v", output, validOutputs)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				infos, err := d.Relations.HandleList(cmd.Context(), member)
				if err != nil {
					return fmt.Errorf("listing relations: %w", err)
				}
				if output == "json" {
					return printJSON(infos)
				}
				printRelationsList(infos)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&member, "member", "m", "", "Only relations touching this member id")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")

	return cmd
}

func printRelationsList(infos []handlers.RelationInfo) {
	if len(infos) == 0 {
		fmt.Println("No relations found.")
		return
	}

	fmt.Println(strings.Repeat("-", 60))
	for _, info := range infos {
		fmt.Printf("%s  %s -[%s]-> %s\n",
			info.ID,
			nameOrID(info.Member1Name, info.Member1ID),
			info.Label,
			nameOrID(info.Member2Name, info.Member2ID),
		)
	}
}

func nameOrID(name, id string) string {
	if name == "" {
		return id + " (missing)"
	}
	return name
}
