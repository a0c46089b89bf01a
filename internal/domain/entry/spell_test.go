package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpellLegacyParse_DelimitedLine(t *testing.T) {
	raw := "Din's Fire — 1 action — Self (5 ft) — Burst of flame"

	parsed := SpellShape{}.LegacyParse(raw)
	assert.Len(t, parsed, 1)

	spell := SpellShape{}.FromAttrs(parsed[0])
	assert.Equal(t, "Din's Fire", spell.Name)
	assert.Equal(t, "1 action", spell.Time)
	assert.Equal(t, "Self (5 ft)", spell.Range)
	assert.Equal(t, "Burst of flame", spell.Effect)
}

func TestSpellLegacyParse_BareLineLandsInNameAndEffect(t *testing.T) {
	parsed := SpellShape{}.LegacyParse("Nayru's Love")
	assert.Len(t, parsed, 1)

	spell := SpellShape{}.FromAttrs(parsed[0])
	assert.Equal(t, "Nayru's Love", spell.Name)
	assert.Equal(t, "Nayru's Love", spell.Effect)
}

func TestSpellLegacyParse_EmDashInsideNameIsNotADelimiter(t *testing.T) {
	parsed := SpellShape{}.LegacyParse("Nayru's Love—Ward\n")
	assert.Len(t, parsed, 1)

	spell := SpellShape{}.FromAttrs(parsed[0])
	assert.Equal(t, "Nayru's Love—Ward", spell.Name)
	assert.Equal(t, "Nayru's Love—Ward", spell.Effect)
	assert.Equal(t, "", spell.Time)
}

func TestSpellLegacyParse_EmDashInsideNameWithDelimitedFields(t *testing.T) {
	parsed := SpellShape{}.LegacyParse("Nayru's Love—Ward — 1 action — Self — Shimmering barrier")
	assert.Len(t, parsed, 1)

	spell := SpellShape{}.FromAttrs(parsed[0])
	assert.Equal(t, "Nayru's Love—Ward", spell.Name)
	assert.Equal(t, "1 action", spell.Time)
	assert.Equal(t, "Self", spell.Range)
	assert.Equal(t, "Shimmering barrier", spell.Effect)
}

func TestSpellLegacyParse_PartialDelimiters(t *testing.T) {
	parsed := SpellShape{}.LegacyParse("Farore's Wind — 1 action")
	assert.Len(t, parsed, 1)

	spell := SpellShape{}.FromAttrs(parsed[0])
	assert.Equal(t, "Farore's Wind", spell.Name)
	assert.Equal(t, "1 action", spell.Time)
	assert.Equal(t, "", spell.Range)
	assert.Equal(t, "", spell.Effect)
}

func TestSpellLegacyParse_SkipsBlankLines(t *testing.T) {
	raw := "\n  \nDin's Fire\n\r\nNayru's Love\n"

	parsed := SpellShape{}.LegacyParse(raw)
	assert.Len(t, parsed, 2)
	assert.Equal(t, "Din's Fire", parsed[0].Name())
	assert.Equal(t, "Nayru's Love", parsed[1].Name())
}

func TestSpellLegacyParse_Empty(t *testing.T) {
	assert.Empty(t, SpellShape{}.LegacyParse(""))
	assert.Empty(t, SpellShape{}.LegacyParse("   \n  "))
}
