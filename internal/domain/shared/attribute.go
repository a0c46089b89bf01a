package shared

// Attribute identifies one of the six ability scores on the sheet
type Attribute string

var Attributes = []Attribute{AttributeCourage, AttributeAgility, AttributeWisdom, AttributeWit, AttributePower, AttributeSpirit}

const (
	AttributeNone    Attribute = ""
	AttributeCourage Attribute = "courage"
	AttributeAgility Attribute = "agility"
	AttributeWisdom  Attribute = "wisdom"
	AttributeWit     Attribute = "wit"
	AttributePower   Attribute = "power"
	AttributeSpirit  Attribute = "spirit"
)

// ScoreField returns the sheet field holding the raw score for this attribute
func (a Attribute) ScoreField() string {
	return "score_" + string(a)
}

// ModifierField returns the derived, engine-owned modifier field
func (a Attribute) ModifierField() string {
	return "mod_" + string(a)
}
