// Package entry defines the typed records stored inside a sheet's
// serialized collection blobs (spells, actions, inventory, features).
package entry

import (
	"fmt"
	"strings"
)

// Kind identifies a collection of entries
type Kind string

const (
	KindSpell   Kind = "spell"
	KindAction  Kind = "action"
	KindItem    Kind = "item"
	KindFeature Kind = "feature"
)

// Attrs is an open string-keyed record as it travels between a builder form
// and a collection blob. Keys a given kind does not recognize are preserved
// across edits.
type Attrs map[string]string

// Name returns the trimmed name attribute
func (a Attrs) Name() string {
	return strings.TrimSpace(a["name"])
}

// Record is a typed view over one stored entry
type Record interface {
	EntryName() string
}

// Shape binds a collection kind to its canonicalization and parsing rules
type Shape[T Record] interface {
	// Kind identifies the collection
	Kind() Kind

	// Normalize canonicalizes builder input into the kind's fixed
	// attribute set. Must be idempotent.
	Normalize(attrs Attrs) Attrs

	// FromAttrs builds the typed view of a normalized record
	FromAttrs(attrs Attrs) T

	// LegacyParse recovers entries from a non-JSON blob, one entry per
	// non-blank line
	LegacyParse(raw string) []Attrs
}

// AttrString coerces a decoded JSON value to the string form a builder
// input would carry.
func AttrString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return ""
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// lines splits a legacy blob into trimmed, non-blank lines
func lines(raw string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
