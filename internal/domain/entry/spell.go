package entry

import (
	"regexp"
	"strings"
)

// Legacy lines delimit parts with an em-dash surrounded by whitespace. A bare
// em-dash inside a name is data, not a delimiter.
var legacyDelimiter = regexp.MustCompile(`\s+—\s+`)

// Spell is one entry in the spells collection
type Spell struct {
	Name       string `json:"name"`
	Level      string `json:"level"`
	Time       string `json:"time"`
	Range      string `json:"range"`
	Components string `json:"components"`
	Duration   string `json:"duration"`
	Effect     string `json:"effect"`
	Notes      string `json:"notes"`
}

// EntryName returns the spell name
func (s Spell) EntryName() string { return s.Name }

// SpellShape implements Shape for the spells collection
type SpellShape struct{}

// Kind identifies the collection
func (SpellShape) Kind() Kind { return KindSpell }

// Normalize trims every recognized attribute
func (SpellShape) Normalize(attrs Attrs) Attrs {
	return Attrs{
		"name":       strings.TrimSpace(attrs["name"]),
		"level":      strings.TrimSpace(attrs["level"]),
		"time":       strings.TrimSpace(attrs["time"]),
		"range":      strings.TrimSpace(attrs["range"]),
		"components": strings.TrimSpace(attrs["components"]),
		"duration":   strings.TrimSpace(attrs["duration"]),
		"effect":     strings.TrimSpace(attrs["effect"]),
		"notes":      strings.TrimSpace(attrs["notes"]),
	}
}

// FromAttrs builds the typed view
func (SpellShape) FromAttrs(attrs Attrs) Spell {
	return Spell{
		Name:       attrs["name"],
		Level:      attrs["level"],
		Time:       attrs["time"],
		Range:      attrs["range"],
		Components: attrs["components"],
		Duration:   attrs["duration"],
		Effect:     attrs["effect"],
		Notes:      attrs["notes"],
	}
}

// LegacyParse recovers spells from the old free-text format: one spell per
// line, optionally "name — time — range — effect". A line without the
// delimiter lands in both name and effect, matching the old saves.
func (SpellShape) LegacyParse(raw string) []Attrs {
	var out []Attrs
	for _, line := range lines(raw) {
		parts := splitLegacy(line)
		spell := Attrs{
			"name":       part(parts, 0),
			"level":      "",
			"time":       part(parts, 1),
			"range":      part(parts, 2),
			"components": "",
			"duration":   "",
			"effect":     part(parts, 3),
			"notes":      "",
		}
		if len(parts) == 1 {
			spell["effect"] = line
		}
		out = append(out, spell)
	}
	return out
}

// splitLegacy splits a legacy line on whitespace-delimited em-dashes only
func splitLegacy(line string) []string {
	var parts []string
	for _, p := range legacyDelimiter.Split(line, -1) {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}

func part(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
