package template

import (
	"strings"

	"prom9/internal/fault"
)

// Payload is the normalized mapping of field names to values handed to the
// renderers. Values are strings or lists of strings; list-valued fields may
// also arrive as comma/newline-delimited strings and are normalized on read.
type Payload map[string]any

// required returns the string value for key or a MissingField error naming
// the key. Presence is what matters: an empty string is a valid value.
func (p Payload) required(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fault.MissingField(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fault.MissingField(key)
	}
	return s, nil
}

// get returns the string value for key, or fallback when the key is absent
// or not a string.
func (p Payload) get(key, fallback string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// items returns the list value for key normalized to trimmed non-empty
// strings. A delimited string is split on commas and newlines; empty
// fragments are discarded.
func (p Payload) items(key string) []string {
	v, ok := p[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []string:
		return normalizeItems(val)
	case string:
		return SplitItems(val)
	default:
		return nil
	}
}

// SplitItems splits a comma/newline-delimited string into trimmed non-empty
// fragments. Both separators act at once, so "a, b\nc" yields three items.
func SplitItems(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	return normalizeItems(parts)
}

func normalizeItems(parts []string) []string {
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
