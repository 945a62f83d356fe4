package domain

import "strings"

// EnvelopeCategory classifies a construction by the building element it forms.
type EnvelopeCategory string

const (
	CategoryExteriorWall EnvelopeCategory = "Außenwand"
	CategoryRoof         EnvelopeCategory = "Dach"
	CategoryGroundSlab   EnvelopeCategory = "Bodenplatte"
	CategoryWindow       EnvelopeCategory = "Fenster"
	CategoryInteriorWall EnvelopeCategory = "Innenwand"
	CategoryUnknown      EnvelopeCategory = "Unbekannt"
)

var categoryKeywords = []struct {
	category EnvelopeCategory
	keywords []string
}{
	{CategoryExteriorWall, []string{"außenwand", "aussenwand", "fassade"}},
	{CategoryRoof, []string{"dach", "roof"}},
	{CategoryGroundSlab, []string{"boden", "bodenplatte", "fundament"}},
	{CategoryWindow, []string{"fenster", "window"}},
	{CategoryInteriorWall, []string{"innenwand", "trennwand"}},
}

// Categorize maps a construction name to its envelope category by
// case-insensitive keyword match. The first category with a hit wins.
func Categorize(name string) EnvelopeCategory {
	lower := strings.ToLower(name)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(lower, kw) {
				return ck.category
			}
		}
	}
	return CategoryUnknown
}

// Limits holds the U-value thresholds (W/m²K) for one envelope category.
type Limits struct {
	Legal     float64 // OIB RL6 maximum
	LowEnergy float64 // Passivhaus threshold
}

var limitTable = map[EnvelopeCategory]Limits{
	CategoryExteriorWall: {Legal: 0.35, LowEnergy: 0.15},
	CategoryRoof:         {Legal: 0.20, LowEnergy: 0.10},
	CategoryGroundSlab:   {Legal: 0.40, LowEnergy: 0.15},
	CategoryWindow:       {Legal: 1.40, LowEnergy: 0.80},
}

// LimitsFor returns the thresholds for c; ok is false for categories
// without regulatory limits.
func LimitsFor(c EnvelopeCategory) (Limits, bool) {
	l, ok := limitTable[c]
	return l, ok
}
