package testutils

import (
	"github.com/lozrp/sheetd/internal/domain/sheet"
)

// CreateTestSheetData returns a realistic saved-sheet field map
func CreateTestSheetData(name string) map[string]string {
	return map[string]string{
		sheet.FieldName:      name,
		sheet.FieldProfBonus: "3",
		"race":               "Hylian",
		"class":              "Knight of Hyrule",
		"level":              "5",
		sheet.FieldHP:        "38",
		sheet.FieldHPMax:     "44",
		sheet.FieldHPTemp:    "0",
		"stamina":            "8",
		"stamina_max":        "10",
		"stamina_temp":       "0",
		"mana":               "4",
		"mana_max":           "6",
		"mana_temp":          "0",
		"score_courage":      "16",
		"score_agility":      "14",
		"score_wisdom":       "12",
		"score_wit":          "10",
		"score_power":        "15",
		"score_spirit":       "8",
		"prof_athletics":     "1",
		"prof_bravery":       "1",
		sheet.FieldSpells:    `[{"name":"Din's Fire","level":"2","effect":"Burst of flame"}]`,
		sheet.FieldInventory: `[{"name":"Master Sword","qty":1,"equippable":true,"equipped":true,"equipType":"weapon"}]`,
	}
}
