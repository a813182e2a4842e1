// Package docstore holds the record encoding shared by the SQL document stores.
package docstore

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// reField matches the field names accepted in queries.
var reField = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Encode serializes a record for storage, dropping any "id" key.
func Encode(data entities.Record) ([]byte, error) {
	clean := make(entities.Record, len(data))
	for k, v := range data {
		if k != "id" {
			clean[k] = v
		}
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return b, nil
}

// Decode parses a stored document and sets its "id" key.
func Decode(id string, raw []byte) (entities.Record, error) {
	rec := entities.Record{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", id, err)
	}
	rec["id"] = id
	return rec, nil
}

// Merge overlays the top-level keys of partial onto a stored document.
func Merge(raw []byte, partial entities.Record) ([]byte, error) {
	rec := entities.Record{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	for k, v := range partial {
		rec[k] = v
	}
	return Encode(rec)
}

// CheckField rejects field names that cannot be used as a JSON path segment.
func CheckField(field string) error {
	if !reField.MatchString(field) {
		return fmt.Errorf("invalid field name %q", field)
	}
	return nil
}

// SortedKeys returns the keys of a match set in a stable order.
func SortedKeys(match map[string]string) ([]string, error) {
	keys := make([]string, 0, len(match))
	for k := range match {
		if err := CheckField(k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
