package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ChildrenSeparator splits the children column of a CSV row.
const ChildrenSeparator = ";"

// CSVParser parses members from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed members.
// Expected columns: id, name, spouseName, contactNumber, state, district, city,
// latitude, longitude, googleMapUrl, dateOfBirth, dateOfMarriage, isAlive,
// dateOfDeath, children. Only name is required.
func (p *CSVParser) Parse(r io.Reader) ([]RawMember, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	return colIndex, nil
}

func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawMember, error) {
	var members []RawMember
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		member, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawMember, error) {
	member := RawMember{
		ID:             getColumn(record, colIndex, "id"),
		Name:           getColumn(record, colIndex, "name"),
		SpouseName:     getColumn(record, colIndex, "spouseName"),
		ContactNumber:  getColumn(record, colIndex, "contactNumber"),
		State:          getColumn(record, colIndex, "state"),
		District:       getColumn(record, colIndex, "district"),
		City:           getColumn(record, colIndex, "city"),
		Latitude:       getColumn(record, colIndex, "latitude"),
		Longitude:      getColumn(record, colIndex, "longitude"),
		GoogleMapURL:   getColumn(record, colIndex, "googleMapUrl"),
		DateOfBirth:    getColumn(record, colIndex, "dateOfBirth"),
		DateOfMarriage: getColumn(record, colIndex, "dateOfMarriage"),
		DateOfDeath:    getColumn(record, colIndex, "dateOfDeath"),
		LineNum:        lineNum,
	}

	if aliveStr := getColumn(record, colIndex, "isAlive"); aliveStr != "" {
		alive, err := parseBool(aliveStr)
		if err != nil {
			return RawMember{}, fmt.Errorf("line %d: invalid isAlive value %q: %w", lineNum, aliveStr, err)
		}
		member.IsAlive = &alive
	}

	if children := getColumn(record, colIndex, "children"); children != "" {
		for _, id := range strings.Split(children, ChildrenSeparator) {
			if id = strings.TrimSpace(id); id != "" {
				member.Children = append(member.Children, id)
			}
		}
	}

	return member, nil
}

// parseBool accepts strconv forms plus yes/no.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
