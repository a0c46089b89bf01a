package sheet

import (
	"github.com/lozrp/sheetd/internal/domain/shared"
)

// Well-known field names referenced across the engine.
const (
	FieldName         = "name"
	FieldProfBonus    = "prof_bonus"
	FieldProfileImage = "profile_image"

	FieldHP     = "hp"
	FieldHPMax  = "hp_max"
	FieldHPTemp = "hp_temp"

	FieldSpells    = "spells"
	FieldActions   = "actions"
	FieldInventory = "inventory"
	FieldFeatures  = "features"
)

// Resource pool field prefixes. A pool owns <prefix>, <prefix>_max and
// <prefix>_temp.
const (
	PoolStamina = "stamina"
	PoolMana    = "mana"
)

// Pools lists the clamped resource pools in recompute order
var Pools = []string{PoolStamina, PoolMana}

// DefaultFields returns the full field inventory of a blank sheet, in the
// order it appears on the page.
func DefaultFields() []Field {
	fields := []Field{
		{Name: FieldName, Kind: KindText},
		{Name: "epithet", Kind: KindText},
		{Name: "race", Kind: KindText},
		{Name: "class", Kind: KindText},
		{Name: "alignment", Kind: KindText},
		{Name: "level", Kind: KindNumber},
		{Name: FieldProfBonus, Kind: KindNumber},
		{Name: "armor_class", Kind: KindNumber},
		{Name: "speed", Kind: KindNumber},
		{Name: "rupees", Kind: KindNumber},

		{Name: FieldHP, Kind: KindNumber},
		{Name: FieldHPMax, Kind: KindNumber},
		{Name: FieldHPTemp, Kind: KindNumber},
	}

	for _, pool := range Pools {
		fields = append(fields,
			Field{Name: pool, Kind: KindRange},
			Field{Name: pool + "_max", Kind: KindNumber},
			Field{Name: pool + "_temp", Kind: KindRange},
		)
	}

	for _, attr := range shared.Attributes {
		fields = append(fields,
			Field{Name: attr.ScoreField(), Kind: KindNumber},
			Field{Name: attr.ModifierField(), Kind: KindNumber},
		)
	}

	for _, skill := range shared.Skills {
		fields = append(fields,
			Field{Name: skill.ProficiencyField(), Kind: KindBoolean},
			Field{Name: skill.TotalField(), Kind: KindText},
		)
	}

	fields = append(fields,
		Field{Name: FieldSpells, Kind: KindText},
		Field{Name: FieldActions, Kind: KindText},
		Field{Name: FieldInventory, Kind: KindText},
		Field{Name: FieldFeatures, Kind: KindText},
		Field{Name: FieldProfileImage, Kind: KindText},
		Field{Name: "allies", Kind: KindText},
		Field{Name: "notes", Kind: KindText},
	)

	return fields
}

// PoolFields returns the three field names owned by a resource pool
func PoolFields(pool string) (current, max, temp string) {
	return pool, pool + "_max", pool + "_temp"
}

// IsPoolValueField reports whether name is a pool's current or temp field,
// i.e. one of the fields the deferred-restore protocol withholds in pass one.
func IsPoolValueField(name string) bool {
	for _, pool := range Pools {
		if name == pool || name == pool+"_temp" {
			return true
		}
	}
	return false
}
