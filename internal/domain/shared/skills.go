package shared

// Skill identifies a trained skill on the sheet
type Skill string

const (
	SkillAcrobatics    Skill = "acrobatics"
	SkillArchery       Skill = "archery"
	SkillAthletics     Skill = "athletics"
	SkillBravery       Skill = "bravery"
	SkillInsight       Skill = "insight"
	SkillIntimidation  Skill = "intimidation"
	SkillInvestigation Skill = "investigation"
	SkillLore          Skill = "lore"
	SkillPerformance   Skill = "performance"
	SkillPersuasion    Skill = "persuasion"
	SkillStealth       Skill = "stealth"
	SkillSurvival      Skill = "survival"
	SkillTinkering     Skill = "tinkering"
)

// Skills lists every skill in sheet order
var Skills = []Skill{
	SkillAcrobatics,
	SkillArchery,
	SkillAthletics,
	SkillBravery,
	SkillInsight,
	SkillIntimidation,
	SkillInvestigation,
	SkillLore,
	SkillPerformance,
	SkillPersuasion,
	SkillStealth,
	SkillSurvival,
	SkillTinkering,
}

// skillAbility is the fixed skill -> ability mapping. A skill total is always
// derived from exactly this ability's modifier.
var skillAbility = map[Skill]Attribute{
	SkillAcrobatics:    AttributeAgility,
	SkillArchery:       AttributeAgility,
	SkillAthletics:     AttributePower,
	SkillBravery:       AttributeCourage,
	SkillInsight:       AttributeWisdom,
	SkillIntimidation:  AttributePower,
	SkillInvestigation: AttributeWit,
	SkillLore:          AttributeWisdom,
	SkillPerformance:   AttributeSpirit,
	SkillPersuasion:    AttributeSpirit,
	SkillStealth:       AttributeAgility,
	SkillSurvival:      AttributeWisdom,
	SkillTinkering:     AttributeWit,
}

// Ability returns the attribute this skill keys off
func (s Skill) Ability() Attribute {
	return skillAbility[s]
}

// ProficiencyField returns the checkbox field carrying the proficiency flag
func (s Skill) ProficiencyField() string {
	return "prof_" + string(s)
}

// TotalField returns the derived, engine-owned total field
func (s Skill) TotalField() string {
	return "skill_" + string(s)
}
