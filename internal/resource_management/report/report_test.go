package report

import (
	"math"
	"testing"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
	"github.com/eplus-at/eplus-resources/internal/resource_management/uvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *store.Store {
	lib := domain.NewLibrary()
	lib.Materials["Beton_20cm"] = &domain.Material{Name: "Beton_20cm", Thickness: 0.20, Conductivity: 2.0, Density: 2400, SpecificHeat: 1000, SolarAbsorptance: 0.7}
	lib.Materials["EPS_Dämmung_10cm"] = &domain.Material{Name: "EPS_Dämmung_10cm", Thickness: 0.10, Conductivity: 0.04, Density: 20, SpecificHeat: 1400, SolarAbsorptance: 0.7}
	lib.Materials["Kalkputz"] = &domain.Material{Name: "Kalkputz", Thickness: 0.015, Conductivity: 0, Density: 1600, SpecificHeat: 1000, SolarAbsorptance: 0.5}
	lib.Resistances["Luftschicht_4cm"] = 0.18
	lib.GlazingU["Glas_3fach"] = 0.7

	lib.Constructions["AT_Außenwand_Test"] = &domain.Construction{Name: "AT_Außenwand_Test", Layers: []string{"Beton_20cm", "EPS_Dämmung_10cm"}}
	lib.Constructions["AT_Außenwand_Dünn"] = &domain.Construction{Name: "AT_Außenwand_Dünn", Layers: []string{"Beton_20cm"}}
	lib.Constructions["AT_Fenster_3fach"] = &domain.Construction{Name: "AT_Fenster_3fach", Layers: []string{"Glas_3fach"}}
	lib.Constructions["AT_Zwischendecke"] = &domain.Construction{Name: "AT_Zwischendecke", Layers: []string{"Beton_20cm", "Luftschicht_4cm"}}
	return store.FromLibrary(lib)
}

func TestCategorizeMaterial(t *testing.T) {
	cases := map[string]string{
		"EPS_Dämmung_10cm":  MaterialInsulation,
		"Steinwolle_16cm":   MaterialInsulation,
		"Hochlochziegel_25": MaterialMasonry,
		"Beton_20cm":        MaterialMasonry,
		"BSH_Fichte":        MaterialTimber,
		"OSB_Platte":        MaterialTimber,
		"Gipskarton":        MaterialPlaster,
		"Bitumenbahn":       MaterialRoofing,
		"Stahl":             MaterialOther,
	}
	for name, want := range cases {
		assert.Equal(t, want, CategorizeMaterial(name), name)
	}
}

func TestMaterialsTable(t *testing.T) {
	tbl := MaterialsTable(fixture())
	assert.Equal(t, MaterialColumns, tbl.Columns)
	require.Len(t, tbl.Rows, 5)

	var order []string
	for _, r := range tbl.Rows {
		order = append(order, r[KeyColumn])
	}
	// Dämmstoffe < Glazing < Mauerwerk < NoMass/AirGap < Putze & Beschichtungen
	assert.Equal(t, []string{"EPS_Dämmung_10cm", "Glas_3fach", "Beton_20cm", "Luftschicht_4cm", "Kalkputz"}, order)

	idx := tbl.Index()
	beton := idx["Beton_20cm"]
	assert.Equal(t, "0.2", beton[ColThickness])
	assert.Equal(t, "0.1", beton[ColResistance])
	assert.Equal(t, "480", beton[ColThermalMass])
	assert.Equal(t, MaterialMasonry, beton[ColCategory])

	assert.Equal(t, "2.5", idx["EPS_Dämmung_10cm"][ColResistance])
	assert.Empty(t, idx["Kalkputz"][ColResistance], "zero conductivity leaves resistance empty")

	gap := idx["Luftschicht_4cm"]
	assert.Equal(t, "0.18", gap[ColResistance])
	assert.Equal(t, MaterialNoMass, gap[ColCategory])
	assert.Empty(t, gap[ColThickness])

	assert.Equal(t, "0.7", idx["Glas_3fach"][ColUFactor])
}

func TestComplianceFlags(t *testing.T) {
	u := func(v float64) *float64 { return &v }

	legal, low := ComplianceFlags(domain.CategoryExteriorWall, u(0.3617))
	assert.Equal(t, FlagNo, legal)
	assert.Equal(t, FlagNo, low)

	legal, low = ComplianceFlags(domain.CategoryExteriorWall, u(0.12))
	assert.Equal(t, FlagYes, legal)
	assert.Equal(t, FlagYes, low)

	legal, low = ComplianceFlags(domain.CategoryUnknown, u(0.12))
	assert.Equal(t, FlagNA, legal)
	assert.Equal(t, FlagNA, low)

	legal, low = ComplianceFlags(domain.CategoryRoof, nil)
	assert.Equal(t, FlagUnknown, legal)
	assert.Equal(t, FlagUnknown, low)
}

func TestConstructionsTable(t *testing.T) {
	s := fixture()
	tbl := ConstructionsTable(s, uvalue.New(s, logger.NewNop()))
	assert.Equal(t, ConstructionColumns, tbl.Columns)
	require.Len(t, tbl.Rows, 4)

	var order []string
	for _, r := range tbl.Rows {
		order = append(order, r[KeyColumn])
	}
	assert.Equal(t, []string{"AT_Außenwand_Test", "AT_Außenwand_Dünn", "AT_Fenster_3fach", "AT_Zwischendecke"}, order)

	wall := tbl.Rows[0]
	assert.Equal(t, string(domain.CategoryExteriorWall), wall[ColCategory])
	assert.Equal(t, "2", wall[ColLayerCount])
	assert.Equal(t, "Beton_20cm | EPS_Dämmung_10cm", wall[ColLayers])
	assert.Equal(t, "0.362", wall[ColUValue])
	assert.Equal(t, FlagNo, wall[ColOIBCompliant])
	assert.Equal(t, FlagNo, wall[ColPassivhausReady])

	window := tbl.Rows[2]
	assert.Equal(t, "0.7", window[ColUValue])
	assert.Equal(t, FlagYes, window[ColOIBCompliant])
	assert.Equal(t, FlagYes, window[ColPassivhausReady])

	assert.Equal(t, FlagNA, tbl.Rows[3][ColOIBCompliant])
}

func TestConstructionsTable_FailedLast(t *testing.T) {
	lib := domain.NewLibrary()
	lib.Materials["Neg"] = &domain.Material{Name: "Neg", Thickness: -1, Conductivity: 1}
	lib.Materials["Beton"] = &domain.Material{Name: "Beton", Thickness: 0.2, Conductivity: 2}
	lib.Constructions["AT_Dach_A"] = &domain.Construction{Name: "AT_Dach_A", Layers: []string{"Neg"}}
	lib.Constructions["AT_Dach_B"] = &domain.Construction{Name: "AT_Dach_B", Layers: []string{"Beton"}}
	s := store.FromLibrary(lib)

	tbl := ConstructionsTable(s, uvalue.New(s, logger.NewNop()))
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "AT_Dach_B", tbl.Rows[0][KeyColumn])
	assert.Equal(t, UValueError, tbl.Rows[1][ColUValue])
	assert.Equal(t, FlagUnknown, tbl.Rows[1][ColOIBCompliant])
}

func TestTables_NonFiniteValues(t *testing.T) {
	lib := domain.NewLibrary()
	lib.Materials["Groß"] = &domain.Material{Name: "Groß", Thickness: 1e200, Conductivity: 1e-200, Density: 1e200, SpecificHeat: 1}
	lib.Materials["NaN_Lambda"] = &domain.Material{Name: "NaN_Lambda", Thickness: 0.1, Conductivity: math.NaN()}
	lib.GlazingU["Glas_NaN"] = math.NaN()
	lib.Constructions["AT_Außenwand_NaN"] = &domain.Construction{Name: "AT_Außenwand_NaN", Layers: []string{"NaN_Lambda"}}
	lib.Constructions["AT_Fenster_NaN"] = &domain.Construction{Name: "AT_Fenster_NaN", Layers: []string{"Glas_NaN"}}
	s := store.FromLibrary(lib)

	var mats Table
	require.NotPanics(t, func() { mats = MaterialsTable(s) })
	idx := mats.Index()
	assert.Empty(t, idx["Groß"][ColThermalMass])
	assert.Empty(t, idx["Groß"][ColResistance])
	assert.Empty(t, idx["NaN_Lambda"][ColResistance])

	var cons Table
	require.NotPanics(t, func() { cons = ConstructionsTable(s, uvalue.New(s, logger.NewNop())) })
	for _, r := range cons.Rows {
		assert.Equal(t, UValueError, r[ColUValue], r[KeyColumn])
	}
}

func TestTableRecords(t *testing.T) {
	tbl := Table{Columns: []string{"Name", "A"}, Rows: []Row{{"Name": "x", "A": "1"}, {"Name": "y"}}}
	assert.Equal(t, [][]string{{"Name", "A"}, {"x", "1"}, {"y", ""}}, tbl.Records())
}
