package sheet

import (
	"math"
	"strconv"
	"strings"
)

// Kind enumerates the field variants on the sheet
type Kind int

const (
	// KindText holds free-form text
	KindText Kind = iota

	// KindNumber holds a numeric value read through integer coercion
	KindNumber

	// KindBoolean holds a checkbox flag
	KindBoolean

	// KindRange holds a bounded numeric value with a live max; assignment
	// silently clamps to [0, Max] the way a native range input does
	KindRange
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

// Field is a single named scalar on the sheet
type Field struct {
	Name  string
	Kind  Kind
	Value string

	// Max is the live ceiling for range fields
	Max int

	// Disabled marks a range control the engine has switched off
	Disabled bool
}

// ToInt coerces a raw field value to an integer. It follows parseInt
// semantics: leading integer digits are used, anything unparsable is 0.
// Values beyond the int range saturate at the nearest bound.
func ToInt(value string) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}

	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}

	n, err := strconv.Atoi(s[:j])
	if err != nil {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return n
}

// ToBool coerces a raw checkbox value to a boolean. "1", "true", "yes" and
// "on" (case-insensitive) are true; anything else, including empty, is false.
func ToBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
