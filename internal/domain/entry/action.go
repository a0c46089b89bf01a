package entry

import "strings"

// Action kinds offered by the builder. A blank kind normalizes to
// ActionKindAction.
const (
	ActionKindAttack   = "Attack"
	ActionKindAction   = "Action"
	ActionKindBonus    = "Bonus Action"
	ActionKindReaction = "Reaction"
	ActionKindOther    = "Other"
)

// Action is one entry in the actions collection
type Action struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Type   string `json:"type"`
	ToHit  string `json:"toHit"`
	Effect string `json:"effect"`
	Notes  string `json:"notes"`
}

// EntryName returns the action name
func (a Action) EntryName() string { return a.Name }

// IsKind reports whether the action has the given kind, case-insensitively
func (a Action) IsKind(kind string) bool {
	return strings.EqualFold(strings.TrimSpace(a.Kind), kind)
}

// ActionShape implements Shape for the actions collection
type ActionShape struct{}

// Kind identifies the collection
func (ActionShape) Kind() Kind { return KindAction }

// Normalize trims every recognized attribute and defaults a blank kind
func (ActionShape) Normalize(attrs Attrs) Attrs {
	kind := strings.TrimSpace(attrs["kind"])
	if kind == "" {
		kind = ActionKindAction
	}
	return Attrs{
		"name":   strings.TrimSpace(attrs["name"]),
		"kind":   kind,
		"type":   strings.TrimSpace(attrs["type"]),
		"toHit":  strings.TrimSpace(attrs["toHit"]),
		"effect": strings.TrimSpace(attrs["effect"]),
		"notes":  strings.TrimSpace(attrs["notes"]),
	}
}

// FromAttrs builds the typed view
func (ActionShape) FromAttrs(attrs Attrs) Action {
	return Action{
		Name:   attrs["name"],
		Kind:   attrs["kind"],
		Type:   attrs["type"],
		ToHit:  attrs["toHit"],
		Effect: attrs["effect"],
		Notes:  attrs["notes"],
	}
}

// LegacyParse treats each non-blank line as a bare action name
func (ActionShape) LegacyParse(raw string) []Attrs {
	var out []Attrs
	for _, line := range lines(raw) {
		out = append(out, Attrs{
			"name":   line,
			"kind":   ActionKindAction,
			"type":   "",
			"toHit":  "",
			"effect": "",
			"notes":  "",
		})
	}
	return out
}
