package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new address book",
		Long:  "Creates a .addressbook directory with default configuration and prepares the store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, seed)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Add a default member to the empty directory")

	return cmd
}

func runInit(cmd *cobra.Command, seed bool) error {
	dir, err := baseDir()
	if err != nil {
		return err
	}

	result, err := handlers.NewInitHandler().Handle(dir)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", result.ConfigPath)

	return withDeps(cmd.Context(), func(d *Deps) error {
		fmt.Printf("Store: %s\n", d.Config.Store.Driver)

		if seed {
			added, err := d.Members.HandleSeed(cmd.Context())
			if err != nil {
				return err
			}
			if added {
				fmt.Println("Added default member.")
			}
		}

		fmt.Println("Address book initialized successfully!")
		return nil
	})
}
