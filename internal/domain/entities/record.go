// Package entities contains core domain data structures.
package entities

// Record is a JSON-compatible document as held by a document store.
// The store-assigned identifier is carried under the "id" key.
type Record map[string]any

// RecordID returns the record's "id" value, or "" if absent.
func (r Record) RecordID() string {
	return stringField(r, "id")
}

// stringField reads a string value, treating absent or non-string values as "".
func stringField(r Record, key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// stringsField reads a list of strings. Non-string entries are dropped.
func stringsField(r Record, key string) []string {
	switch v := r[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
