package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "Master Sword", "Master Sword"},
		{"true", true, "1"},
		{"false", false, ""},
		{"whole float", float64(3), "3"},
		{"fractional float", 2.5, "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AttrString(tt.value))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	// Normalizing twice must equal normalizing once, for every shape
	spellIn := Attrs{"name": "  Din's Fire ", "effect": " burn ", "junk": "x"}
	once := SpellShape{}.Normalize(spellIn)
	assert.Equal(t, once, SpellShape{}.Normalize(once))

	actionIn := Attrs{"name": " Slash ", "kind": ""}
	onceA := ActionShape{}.Normalize(actionIn)
	assert.Equal(t, onceA, ActionShape{}.Normalize(onceA))

	itemIn := Attrs{"name": " Bow ", "equippable": "true", "equipped": "yes", "properties": "Light, light , Heavy"}
	onceI := ItemShape{}.Normalize(itemIn)
	assert.Equal(t, onceI, ItemShape{}.Normalize(onceI))

	featureIn := Attrs{"name": " Hylian Grit ", "uses": " 3 "}
	onceF := FeatureShape{}.Normalize(featureIn)
	assert.Equal(t, onceF, FeatureShape{}.Normalize(onceF))
}

func TestNormalizeDropsUnknownAttrs(t *testing.T) {
	out := SpellShape{}.Normalize(Attrs{"name": "Farore's Wind", "homebrew": "yes"})
	_, ok := out["homebrew"]
	assert.False(t, ok)
}
