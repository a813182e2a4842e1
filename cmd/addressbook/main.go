// Package main provides the entry point for the addressbook CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0-dev"
	globalDir string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "addressbook",
		Short:         "A family address book with relation trees and area views",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalDir, "dir", "d", "", "Project directory (default: current directory)")

	rootCmd.AddCommand(
		newInitCmd(),
		newMembersCmd(),
		newLinkCmd(),
		newUnlinkCmd(),
		newRelationsCmd(),
		newTreeCmd(),
		newForestCmd(),
		newAreasCmd(),
		newMapCmd(),
		newCoordsCmd(),
		newImportCmd(),
		newExportCmd(),
		newServeCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
