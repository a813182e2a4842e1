package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/services"
	"github.com/yasar2385/family-address-book/internal/infrastructure/parsers"
)

type exportFlags struct {
	filters filterFlags
	format  string
	output  string
}

// csvColumns matches the columns read by the CSV import parser.
var csvColumns = []string{
	"id", "name", "spouseName", "contactNumber", "state", "district", "city",
	"latitude", "longitude", "googleMapUrl", "dateOfBirth", "dateOfMarriage",
	"isAlive", "dateOfDeath", "children",
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export members to file",
		Long:  "Exports members to JSON, CSV, or markdown format. JSON and CSV output can be imported again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	flags.filters.register(cmd.Flags())
	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		result, err := d.Directory.HandleFilter(cmd.Context(), flags.filters.criteria())
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}
		if len(result.Members) == 0 {
			return fmt.Errorf("no members found to export")
		}
		return export(result.Members, flags.format, flags.output)
	})
}

func export(members []entities.Member, format, output string) (err error) {
	var w io.Writer = os.Stdout

	if output != "" {
		f, ferr := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if ferr != nil {
			return fmt.Errorf("creating file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatMembers(w, members, format); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if output != "" {
		fmt.Printf("Exported %d members to %s\n", len(members), output)
	}
	return nil
}

func formatMembers(w io.Writer, members []entities.Member, format string) error {
	switch format {
	case "json":
		return formatJSON(w, members)
	case "csv":
		return formatCSV(w, members)
	case "markdown":
		return formatMarkdown(w, members)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatJSON(w io.Writer, members []entities.Member) error {
	rows := make([]parsers.RawMember, 0, len(members))
	for i := range members {
		m := &members[i]
		alive := m.IsAlive
		rows = append(rows, parsers.RawMember{
			ID:             m.ID,
			Name:           m.Name,
			SpouseName:     m.SpouseName,
			ContactNumber:  m.ContactNumber,
			State:          m.State,
			District:       m.District,
			City:           m.City,
			Latitude:       m.Latitude,
			Longitude:      m.Longitude,
			GoogleMapURL:   m.GoogleMapURL,
			DateOfBirth:    m.DateOfBirth,
			DateOfMarriage: m.DateOfMarriage,
			IsAlive:        &alive,
			DateOfDeath:    m.DateOfDeath,
			Children:       m.Children,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

func formatCSV(w io.Writer, members []entities.Member) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvColumns); err != nil {
		return err
	}

	for i := range members {
		m := &members[i]
		row := []string{
			m.ID,
			m.Name,
			m.SpouseName,
			m.ContactNumber,
			m.State,
			m.District,
			m.City,
			m.Latitude,
			m.Longitude,
			m.GoogleMapURL,
			m.DateOfBirth,
			m.DateOfMarriage,
			strconv.FormatBool(m.IsAlive),
			m.DateOfDeath,
			strings.Join(m.Children, parsers.ChildrenSeparator),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, members []entities.Member) error {
	if _, err := fmt.Fprintf(w, "# Family Address Book\n\nTotal: %d members\n\n", len(members)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Name | Spouse | Contact | Area | Children |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|--------|---------|------|----------|\n"); err != nil {
		return err
	}

	for i := range members {
		m := &members[i]
		name := m.Name
		if !m.IsAlive {
			name += " †"
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %d |\n",
			escapeMarkdown(name),
			escapeMarkdown(m.SpouseName),
			escapeMarkdown(m.ContactNumber),
			escapeMarkdown(services.AreaLabel(m)),
			len(m.Children),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
