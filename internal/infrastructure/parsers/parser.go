// Package parsers provides parsers for importing members from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawMember represents a member parsed from an external source before validation.
type RawMember struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	SpouseName     string   `json:"spouseName,omitempty"`
	ContactNumber  string   `json:"contactNumber,omitempty"`
	State          string   `json:"state,omitempty"`
	District       string   `json:"district,omitempty"`
	City           string   `json:"city,omitempty"`
	Latitude       string   `json:"latitude,omitempty"`
	Longitude      string   `json:"longitude,omitempty"`
	GoogleMapURL   string   `json:"googleMapUrl,omitempty"`
	DateOfBirth    string   `json:"dateOfBirth,omitempty"`
	DateOfMarriage string   `json:"dateOfMarriage,omitempty"`
	IsAlive        *bool    `json:"isAlive,omitempty"` // Pointer to distinguish false from unset
	DateOfDeath    string   `json:"dateOfDeath,omitempty"`
	Children       []string `json:"children,omitempty"`
	LineNum        int      `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing members from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawMember, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
