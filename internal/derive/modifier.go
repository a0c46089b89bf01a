// Package derive recomputes every dependent value on the sheet: ability
// modifiers, skill totals, clamped resource pools and the hearts view.
package derive

import (
	"fmt"
	"strings"

	"github.com/lozrp/sheetd/internal/domain/sheet"
)

// Modifier computes an ability modifier: floor((score - 10) / 2)
func Modifier(score int) int {
	return floorDiv(score-10, 2)
}

// ModifierFromRaw computes a modifier from a raw score field. A blank score
// behaves as 10 (modifier 0).
func ModifierFromRaw(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Modifier(10)
	}
	return Modifier(sheet.ToInt(s))
}

// SkillTotal computes a skill total from its ability modifier, proficiency
// flag and the sheet-wide proficiency bonus
func SkillTotal(modifier int, proficient bool, profBonus int) int {
	if proficient {
		return modifier + profBonus
	}
	return modifier
}

// FormatSigned renders a derived total with an explicit sign: "+3", "+0", "-1"
func FormatSigned(n int) string {
	return fmt.Sprintf("%+d", n)
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
