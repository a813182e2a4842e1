package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses members from a JSON array.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed members.
func (p *JSONParser) Parse(r io.Reader) ([]RawMember, error) {
	var members []RawMember

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&members); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Array index + 1
	for i := range members {
		members[i].LineNum = i + 1
	}

	return members, nil
}
