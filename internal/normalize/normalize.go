// Package normalize maps raw upstream payloads into canonical records.
// Every function here is pure: no I/O, no panics on missing fields, absent
// values become empty strings.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"

	"RegRadar/internal/domain"
)

// Func maps one source's raw items into canonical records.
type Func func(items []map[string]any) []domain.SourceRecord

var bySource = map[string]Func{
	"federal": Federal,
	"state":   State,
	"local":   Local,
}

// ForSource routes a source name to its normalizer. Adding a source means
// adding one function above plus one entry here.
func ForSource(name string) (Func, bool) {
	fn, ok := bySource[name]
	return fn, ok
}

// str returns m[key] when it is a string, otherwise "".
func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// scalar renders string or numeric values; JSON numbers decode as float64.
func scalar(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// nested returns m[key] when it is a mapping, otherwise nil.
func nested(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

// firstOf returns the first non-empty string value among keys, in order.
func firstOf(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := str(m, key); v != "" {
			return v
		}
	}
	return ""
}

// serialize renders the raw mapping as JSON for the audit trail.
func serialize(m map[string]any) string {
	if m == nil {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
