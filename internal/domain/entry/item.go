package entry

import "strings"

// Item is one entry in the inventory collection
type Item struct {
	Name       string `json:"name"`
	Qty        string `json:"qty"`
	Notes      string `json:"notes"`
	Tags       string `json:"tags"`
	Equippable bool   `json:"equippable"`
	Equipped   bool   `json:"equipped"`
	EquipType  string `json:"equipType"`
	Damage     string `json:"damage"`
	Range      string `json:"range"`
	ArmorClass string `json:"armorClass"`
	Properties string `json:"properties"`
}

// EntryName returns the item name
func (i Item) EntryName() string { return i.Name }

// EquipKind classifies the item by its equip type tag
func (i Item) EquipKind() EquipKind {
	return ClassifyEquipType(i.EquipType)
}

// ItemShape implements Shape for the inventory collection
type ItemShape struct{}

// Kind identifies the collection
func (ItemShape) Kind() Kind { return KindItem }

// Normalize trims every recognized attribute, canonicalizes the property
// list, and enforces that equipped is only ever stored for equippable items.
func (ItemShape) Normalize(attrs Attrs) Attrs {
	equippable := attrBool(attrs["equippable"])
	equipped := equippable && attrBool(attrs["equipped"])

	return Attrs{
		"name":       strings.TrimSpace(attrs["name"]),
		"qty":        strings.TrimSpace(attrs["qty"]),
		"notes":      strings.TrimSpace(attrs["notes"]),
		"tags":       strings.TrimSpace(attrs["tags"]),
		"equippable": flag(equippable),
		"equipped":   flag(equipped),
		"equipType":  strings.TrimSpace(attrs["equipType"]),
		"damage":     strings.TrimSpace(attrs["damage"]),
		"range":      strings.TrimSpace(attrs["range"]),
		"armorClass": strings.TrimSpace(attrs["armorClass"]),
		"properties": NormalizeProperties(attrs["properties"]),
	}
}

// FromAttrs builds the typed view
func (ItemShape) FromAttrs(attrs Attrs) Item {
	return Item{
		Name:       attrs["name"],
		Qty:        attrs["qty"],
		Notes:      attrs["notes"],
		Tags:       attrs["tags"],
		Equippable: attrBool(attrs["equippable"]),
		Equipped:   attrBool(attrs["equipped"]),
		EquipType:  attrs["equipType"],
		Damage:     attrs["damage"],
		Range:      attrs["range"],
		ArmorClass: attrs["armorClass"],
		Properties: attrs["properties"],
	}
}

// LegacyParse treats each non-blank line as a bare item name
func (s ItemShape) LegacyParse(raw string) []Attrs {
	var out []Attrs
	for _, line := range lines(raw) {
		out = append(out, s.Normalize(Attrs{"name": line}))
	}
	return out
}

func attrBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return ""
}
