package entry

import "strings"

// EquipKind is the six-way classification of an inventory item's equip type.
// It governs which optional attributes matter for display and which property
// vocabulary the builder offers.
type EquipKind string

const (
	EquipWeapon EquipKind = "weapon"
	EquipAmmo   EquipKind = "ammo"
	EquipArmor  EquipKind = "armor"
	EquipShield EquipKind = "shield"
	EquipFocus  EquipKind = "focus"
	EquipGear   EquipKind = "gear"
)

// equipTypeSets maps free-form equip type tags to categories. Unrecognized
// or blank tags fall through to gear.
var equipTypeSets = map[EquipKind][]string{
	EquipWeapon: {"weapon", "sword", "blade", "spear", "axe", "hammer", "club", "dagger", "boomerang", "whip"},
	EquipAmmo:   {"ammo", "ammunition", "arrow", "arrows", "bomb", "bombs", "seed", "seeds"},
	EquipArmor:  {"armor", "armour", "tunic", "mail", "plate", "cloak"},
	EquipShield: {"shield", "buckler"},
	EquipFocus:  {"focus", "wand", "rod", "instrument", "ocarina", "charm"},
}

// propertyVocab is the controlled property list offered per category
var propertyVocab = map[EquipKind][]string{
	EquipWeapon: {"Finesse", "Heavy", "Light", "Reach", "Thrown", "Two-Handed", "Versatile"},
	EquipAmmo:   {"Recoverable", "Explosive"},
	EquipArmor:  {"Light", "Medium", "Heavy", "Stealth Disadvantage"},
	EquipShield: {"Heavy", "Spiked"},
	EquipFocus:  {"Conduit", "Fragile"},
	EquipGear:   {},
}

// ClassifyEquipType maps a free-form equip type tag to its category
func ClassifyEquipType(equipType string) EquipKind {
	tag := strings.ToLower(strings.TrimSpace(equipType))
	if tag == "" {
		return EquipGear
	}
	for kind, tags := range equipTypeSets {
		for _, t := range tags {
			if tag == t {
				return kind
			}
		}
	}
	return EquipGear
}

// PropertyOptions returns the property vocabulary for a category
func PropertyOptions(kind EquipKind) []string {
	return propertyVocab[kind]
}

// NormalizeProperties canonicalizes a comma-separated property list:
// entries are trimmed, blanks dropped, and duplicates removed
// case-insensitively while preserving first-occurrence order.
func NormalizeProperties(raw string) string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}
