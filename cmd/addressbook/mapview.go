package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func newMapCmd() *cobra.Command {
	var (
		filters filterFlags
		output  string
	)

	cmd := &cobra.Command{
		Use:   "map",
		Short: "List members with map coordinates",
		Long:  "Prints a marker with a directions link for every member with usable coordinates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validOutputs, output) {
				return fmt.Errorf("invalid output %q, valid outputs: %v", output, validOutputs)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				markers, err := d.Directory.HandleMap(cmd.Context(), filters.criteria())
				if err != nil {
					return fmt.Errorf("building map: %w", err)
				}
				if output == "json" {
					return printJSON(markers)
				}
				if len(markers) == 0 {
					fmt.Println("No members with coordinates.")
					return nil
				}
				for _, m := range markers {
					fmt.Printf("%s  %.6f, %.6f\n", nameColor.Sprint(m.Name), m.Lat, m.Lng)
					fmt.Printf("  %s\n", m.DirectionsURL)
				}
				return nil
			})
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")

	return cmd
}

func newCoordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coords <map-url>",
		Short: "Extract coordinates from a map link",
		Long: `Reads latitude and longitude from a map link. Shortened links that
do not carry coordinates are reported as such.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				c := d.Directory.HandleCoordinates(args[0])
				if c == nil {
					return fmt.Errorf("no coordinates found in %q", args[0])
				}
				fmt.Printf("%s,%s\n", c.Lat, c.Lng)
				return nil
			})
		},
	}
}
