package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/infrastructure/parsers"
)

func exportFixture() []entities.Member {
	return []entities.Member{
		{
			ID:          "m1",
			Name:        "Ravi",
			SpouseName:  "Lakshmi",
			City:        "Chennai",
			State:       "Tamil Nadu",
			Latitude:    "13.08",
			Longitude:   "80.27",
			IsAlive:     true,
			Children:    []string{"m2", "m3"},
			DateOfBirth: "1960-04-12",
		},
		{
			ID:          "m2",
			Name:        "Kumar | Jr",
			IsAlive:     false,
			DateOfDeath: "2020-01-01",
			Children:    []string{},
		},
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	err := formatJSON(&buf, exportFixture())
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	require.Len(t, parsed, 2)
	assert.Equal(t, "m1", parsed[0]["id"])
	assert.Equal(t, "Lakshmi", parsed[0]["spouseName"])
	assert.Equal(t, true, parsed[0]["isAlive"])
	assert.Equal(t, []any{"m2", "m3"}, parsed[0]["children"])
	assert.Equal(t, false, parsed[1]["isAlive"])
	assert.NotContains(t, parsed[1], "city")
}

func TestFormatJSON_EmptyMembers(t *testing.T) {
	var buf bytes.Buffer
	err := formatJSON(&buf, []entities.Member{})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatCSV(t *testing.T) {
	var buf bytes.Buffer
	err := formatCSV(&buf, exportFixture())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(csvColumns, ","), lines[0])
	assert.Contains(t, lines[1], "m2;m3")
	assert.Contains(t, lines[2], "false,2020-01-01")
}

func TestExport_RoundTripsThroughParsers(t *testing.T) {
	tests := []struct {
		format string
		parser parsers.Parser
	}{
		{format: "json", parser: &parsers.JSONParser{}},
		{format: "csv", parser: &parsers.CSVParser{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, formatMembers(&buf, exportFixture(), tt.format))

			raw, err := tt.parser.Parse(&buf)
			require.NoError(t, err)

			require.Len(t, raw, 2)
			assert.Equal(t, "Ravi", raw[0].Name)
			assert.Equal(t, []string{"m2", "m3"}, raw[0].Children)
			require.NotNil(t, raw[1].IsAlive)
			assert.False(t, *raw[1].IsAlive)
			assert.Equal(t, "Kumar | Jr", raw[1].Name)
		})
	}
}

func TestFormatMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := formatMarkdown(&buf, exportFixture())
	require.NoError(t, err)

	result := buf.String()
	assert.Contains(t, result, "# Family Address Book")
	assert.Contains(t, result, "Total: 2 members")
	assert.Contains(t, result, "| Ravi | Lakshmi |  | Chennai, Tamil Nadu | 2 |")
	assert.Contains(t, result, "Kumar \\| Jr †")
	assert.Contains(t, result, "No Area Set")
}

func TestFormatMembers_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := formatMembers(&buf, exportFixture(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExport_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")

	require.NoError(t, export(exportFixture(), "json", path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	raw, err := parsers.ForFile(path).Parse(f)
	require.NoError(t, err)
	assert.Len(t, raw, 2)
}
