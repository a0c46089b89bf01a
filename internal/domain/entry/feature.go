package entry

import "strings"

// Feature is one entry in the features collection
type Feature struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Uses   string `json:"uses"`
	Desc   string `json:"desc"`
	Notes  string `json:"notes"`
}

// EntryName returns the feature name
func (f Feature) EntryName() string { return f.Name }

// FeatureShape implements Shape for the features collection
type FeatureShape struct{}

// Kind identifies the collection
func (FeatureShape) Kind() Kind { return KindFeature }

// Normalize trims every recognized attribute
func (FeatureShape) Normalize(attrs Attrs) Attrs {
	return Attrs{
		"name":   strings.TrimSpace(attrs["name"]),
		"source": strings.TrimSpace(attrs["source"]),
		"uses":   strings.TrimSpace(attrs["uses"]),
		"desc":   strings.TrimSpace(attrs["desc"]),
		"notes":  strings.TrimSpace(attrs["notes"]),
	}
}

// FromAttrs builds the typed view
func (FeatureShape) FromAttrs(attrs Attrs) Feature {
	return Feature{
		Name:   attrs["name"],
		Source: attrs["source"],
		Uses:   attrs["uses"],
		Desc:   attrs["desc"],
		Notes:  attrs["notes"],
	}
}

// LegacyParse treats each non-blank line as a bare feature name
func (FeatureShape) LegacyParse(raw string) []Attrs {
	var out []Attrs
	for _, line := range lines(raw) {
		out = append(out, Attrs{
			"name":   line,
			"source": "",
			"uses":   "",
			"desc":   "",
			"notes":  "",
		})
	}
	return out
}
