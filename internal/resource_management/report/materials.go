package report

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
)

// Material table columns.
const (
	ColThickness        = "Thickness [m]"
	ColConductivity     = "Conductivity [W/mK]"
	ColDensity          = "Density [kg/m3]"
	ColSpecificHeat     = "Specific Heat [J/kgK]"
	ColResistance       = "Thermal Resistance [m2K/W]"
	ColThermalMass      = "Thermal Mass [kJ/m2K]"
	ColSolarAbsorptance = "Solar Absorptance"
	ColUFactor          = "U-Factor [W/m2K]"
	ColCategory         = "Category"
)

var MaterialColumns = []string{
	KeyColumn, ColThickness, ColConductivity, ColDensity, ColSpecificHeat,
	ColResistance, ColThermalMass, ColSolarAbsorptance, ColUFactor, ColCategory,
}

// Material categories of the material database.
const (
	MaterialInsulation = "Dämmstoffe"
	MaterialMasonry    = "Mauerwerk"
	MaterialTimber     = "Holzwerkstoffe"
	MaterialPlaster    = "Putze & Beschichtungen"
	MaterialRoofing    = "Dacheindeckung"
	MaterialOther      = "Sonstige"
	MaterialNoMass     = "NoMass/AirGap"
	MaterialGlazing    = "Glazing"
)

var materialKeywords = []struct {
	category string
	keywords []string
}{
	{MaterialInsulation, []string{"dämmung", "eps", "steinwolle", "pur", "zellulose"}},
	{MaterialMasonry, []string{"ziegel", "beton", "porenbeton", "mauerwerk"}},
	{MaterialTimber, []string{"holz", "bsh", "osb"}},
	{MaterialPlaster, []string{"putz", "gips", "beschichtung"}},
	{MaterialRoofing, []string{"dach", "ziegel", "bitumen"}},
}

// CategorizeMaterial sorts a material into a database category by name.
func CategorizeMaterial(name string) string {
	lower := strings.ToLower(name)
	for _, mk := range materialKeywords {
		for _, kw := range mk.keywords {
			if strings.Contains(lower, kw) {
				return mk.category
			}
		}
	}
	return MaterialOther
}

// MaterialsTable builds the material database: opaque materials with their
// derived resistance and thermal mass, then no-mass and glazing entries.
// Rows are sorted by category, then name.
func MaterialsTable(s *store.Store) Table {
	t := Table{Columns: MaterialColumns}

	for _, name := range s.MaterialNames() {
		m, _ := s.Material(name)
		row := Row{
			KeyColumn:           name,
			ColThickness:        formatFloat(m.Thickness),
			ColConductivity:     formatFloat(m.Conductivity),
			ColDensity:          formatFloat(m.Density),
			ColSpecificHeat:     formatFloat(m.SpecificHeat),
			ColThermalMass:      round(m.Density*m.SpecificHeat*m.Thickness/1000, 2),
			ColSolarAbsorptance: formatFloat(m.SolarAbsorptance),
			ColCategory:         CategorizeMaterial(name),
		}
		if m.Conductivity != 0 {
			row[ColResistance] = round(m.Thickness/m.Conductivity, 4)
		}
		t.Rows = append(t.Rows, row)
	}
	for _, name := range s.ResistanceNames() {
		r, _ := s.Resistance(name)
		t.Rows = append(t.Rows, Row{KeyColumn: name, ColResistance: formatFloat(r), ColCategory: MaterialNoMass})
	}
	for _, name := range s.GlazingNames() {
		u, _ := s.GlazingU(name)
		t.Rows = append(t.Rows, Row{KeyColumn: name, ColUFactor: formatFloat(u), ColCategory: MaterialGlazing})
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if a[ColCategory] != b[ColCategory] {
			return a[ColCategory] < b[ColCategory]
		}
		return a[KeyColumn] < b[KeyColumn]
	})
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// round leaves the cell empty for values decimal cannot represent.
func round(v float64, places int32) string {
	if !finite(v) {
		return ""
	}
	return decimal.NewFromFloat(v).Round(places).String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
