package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import members from JSON or CSV",
		Long: `Imports members from a structured file. Rows with errors are reported
and skipped; the remaining rows are saved.

CSV files need a "name" column. Children ids are separated by ";".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", string(services.ConflictSkip), "Conflict handling for existing ids (skip, overwrite)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	strategy := services.ConflictStrategy(flags.onConflict)
	if strategy != services.ConflictSkip && strategy != services.ConflictOverwrite {
		return fmt.Errorf("invalid --on-conflict value %q (valid: skip, overwrite)", flags.onConflict)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: strategy,
		}

		fmt.Printf("Importing %s...\n", filePath)

		result, err := d.Import.Handle(ctx, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Errors) > 0 {
			fmt.Printf("\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d members would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d members", result.Imported)
		}

		if result.Skipped > 0 {
			fmt.Printf(", %d skipped (already exist)", result.Skipped)
		}

		if len(result.Errors) > 0 {
			fmt.Printf(", %d errors", len(result.Errors))
		}

		fmt.Println()

		return nil
	})
}
