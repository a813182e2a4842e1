package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage members",
		Long:  "List, show, add, edit and delete members of the directory.",
	}

	cmd.AddCommand(
		newMembersListCmd(),
		newMembersShowCmd(),
		newMembersAddCmd(),
		newMembersEditCmd(),
		newMembersDeleteCmd(),
	)

	return cmd
}

type filterFlags struct {
	search      string
	state       string
	district    string
	hasChildren string
}

func (f *filterFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.search, "search", "s", "", "Match name, spouse, city or contact number")
	flags.StringVar(&f.state, "state", services.FilterAll, "Filter by state")
	flags.StringVar(&f.district, "district", services.FilterAll, "Filter by district")
	flags.StringVar(&f.hasChildren, "has-children", services.FilterAll, "Filter by children (all, yes, no)")
}

func (f *filterFlags) criteria() services.Criteria {
	return services.Criteria{
		SearchTerm:  f.search,
		State:       f.state,
		District:    f.district,
		HasChildren: f.hasChildren,
	}
}

func newMembersListCmd() *cobra.Command {
	var (
		filters filterFlags
		output  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Long: `Lists members matching every given filter.

Examples:
  addressbook members list
  addressbook members list --state "Tamil Nadu" --has-children yes
  addressbook members list -s ravi --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validOutputs, output) {
				return fmt.Errorf("invalid output %q, valid outputs: %v", output, validOutputs)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Directory.HandleFilter(cmd.Context(), filters.criteria())
				if err != nil {
					return fmt.Errorf("listing members: %w", err)
				}
				if output == "json" {
					return printJSON(result.Members)
				}
				displayMembers(result.Members, result.Total)
				return nil
			})
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")

	return cmd
}

func displayMembers(members []entities.Member, total int) {
	if len(members) == 0 {
		fmt.Println("No members found.")
		return
	}

	fmt.Printf("Showing %d of %d members:\n\n", len(members), total)
	for i := range members {
		displayMember(&members[i])
	}
}

func displayMember(m *entities.Member) {
	fmt.Printf("ID: %s\n", m.ID)
	fmt.Printf("  %s\n", m.Name)
	if m.SpouseName != "" {
		fmt.Printf("  Spouse: %s\n", m.SpouseName)
	}
	if m.ContactNumber != "" {
		fmt.Printf("  Contact: %s\n", m.ContactNumber)
	}
	fmt.Printf("  Area: %s\n", services.AreaLabel(m))
	if m.GoogleMapURL != "" {
		fmt.Printf("  Map: %s\n", m.GoogleMapURL)
	}
	if m.DateOfBirth != "" {
		fmt.Printf("  Born: %s\n", m.DateOfBirth)
	}
	if m.DateOfMarriage != "" {
		fmt.Printf("  Married: %s\n", m.DateOfMarriage)
	}
	if !m.IsAlive {
		fmt.Printf("  Died: %s\n", orDash(m.DateOfDeath))
	}
	if len(m.Children) > 0 {
		fmt.Printf("  Children: %s\n", strings.Join(m.Children, ", "))
	}
	fmt.Println()
}

func newMembersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <member-id>",
		Short: "Show one member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				m, err := d.Members.HandleGet(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				displayMember(m)
				return nil
			})
		},
	}
}

// memberFlags binds one flag per editable member field.
type memberFlags struct {
	name     string
	spouse   string
	contact  string
	state    string
	district string
	city     string
	lat      string
	lng      string
	mapURL   string
	born     string
	married  string
	died     string
	alive    bool
	children []string
}

func (f *memberFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.name, "name", "", "Full name")
	flags.StringVar(&f.spouse, "spouse", "", "Spouse name")
	flags.StringVar(&f.contact, "contact", "", "Contact number")
	flags.StringVar(&f.state, "state", "", "State")
	flags.StringVar(&f.district, "district", "", "District")
	flags.StringVar(&f.city, "city", "", "City")
	flags.StringVar(&f.lat, "lat", "", "Latitude in decimal degrees")
	flags.StringVar(&f.lng, "lng", "", "Longitude in decimal degrees")
	flags.StringVar(&f.mapURL, "map-url", "", "Map link; coordinates are read from it when present")
	flags.StringVar(&f.born, "born", "", "Date of birth (YYYY-MM-DD)")
	flags.StringVar(&f.married, "married", "", "Date of marriage (YYYY-MM-DD)")
	flags.StringVar(&f.died, "died", "", "Date of death (YYYY-MM-DD)")
	flags.BoolVar(&f.alive, "alive", true, "Whether the member is alive")
	flags.StringSliceVar(&f.children, "children", nil, "Child member ids")
}

func (f *memberFlags) member() entities.Member {
	return entities.Member{
		Name:           f.name,
		SpouseName:     f.spouse,
		ContactNumber:  f.contact,
		State:          f.state,
		District:       f.district,
		City:           f.city,
		Latitude:       f.lat,
		Longitude:      f.lng,
		GoogleMapURL:   f.mapURL,
		DateOfBirth:    f.born,
		DateOfMarriage: f.married,
		IsAlive:        f.alive,
		DateOfDeath:    f.died,
		Children:       f.children,
	}
}

// patch returns a patch holding only the flags set on the command line.
func (f *memberFlags) patch(flags *pflag.FlagSet) handlers.MemberPatch {
	str := func(name, v string) *string {
		if !flags.Changed(name) {
			return nil
		}
		return &v
	}

	p := handlers.MemberPatch{
		Name:           str("name", f.name),
		SpouseName:     str("spouse", f.spouse),
		ContactNumber:  str("contact", f.contact),
		State:          str("state", f.state),
		District:       str("district", f.district),
		City:           str("city", f.city),
		Latitude:       str("lat", f.lat),
		Longitude:      str("lng", f.lng),
		GoogleMapURL:   str("map-url", f.mapURL),
		DateOfBirth:    str("born", f.born),
		DateOfMarriage: str("married", f.married),
		DateOfDeath:    str("died", f.died),
	}
	if flags.Changed("alive") {
		alive := f.alive
		p.IsAlive = &alive
	}
	if flags.Changed("children") {
		children := f.children
		p.Children = &children
	}
	return p
}

func newMembersAddCmd() *cobra.Command {
	var flags memberFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member",
		Long: `Adds a member to the directory.

Examples:
  addressbook members add --name "Ravi Kumar" --city Chennai --state "Tamil Nadu"
  addressbook members add --name Anu --map-url "https://www.google.com/maps/@13.08,80.27,15z"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				m, err := d.Members.HandleCreate(cmd.Context(), flags.member())
				if err != nil {
					return fmt.Errorf("adding member: %w", err)
				}
				fmt.Printf("Added member: %s (%s)\n", m.Name, m.ID)
				return nil
			})
		},
	}

	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMembersEditCmd() *cobra.Command {
	var flags memberFlags

	cmd := &cobra.Command{
		Use:   "edit <member-id>",
		Short: "Edit a member",
		Long: `Changes the given fields of a member. Fields without a flag are kept.
A --map-url edit wins over --lat/--lng in the same command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				m, err := d.Members.HandleUpdate(cmd.Context(), args[0], flags.patch(cmd.Flags()))
				if err != nil {
					return fmt.Errorf("editing member: %w", err)
				}
				fmt.Printf("Updated member: %s\n", m.ID)
				displayMember(m)
				return nil
			})
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newMembersDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <member-id>",
		Short: "Delete a member",
		Long:  "Deletes a member and every relation touching it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				m, err := d.Members.HandleGet(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !force && !confirm(fmt.Sprintf("Delete %s and its relations?", m.Name)) {
					fmt.Println("Aborted.")
					return nil
				}
				if err := d.Members.HandleDelete(cmd.Context(), m.ID); err != nil {
					return fmt.Errorf("deleting member: %w", err)
				}
				fmt.Printf("Deleted member: %s\n", m.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
