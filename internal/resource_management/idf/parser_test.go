package idf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleIDF = `
! Austrian wall library
Material,
  Beton_20cm,          !- Name
  MediumRough,         !- Roughness
  0.20,                !- Thickness {m}
  2.0,                 !- Conductivity {W/m-K}
  2400,                !- Density {kg/m3}
  1000;                !- Specific Heat {J/kg-K}

Material,
  Daemmung_10cm, Rough, 0.10, 0.04, 20, 1400, 0.85, 0.6, 0.5;

Material:NoMass,
  Putz_Aussen, Smooth, 0.02;

Material:AirGap,
  Luftschicht_4cm, 0.18;

WindowMaterial:SimpleGlazingSystem,
  Glas_3fach, 0.6, 0.5;

Construction,
  AT_Außenwand_Test,
  Beton_20cm,
  Daemmung_10cm;

Version, 24.1;
`

func newTestParser() *Parser {
	return NewParser(logger.NewNop())
}

func TestSplit(t *testing.T) {
	objs := Split("Material , A, B;\n  ; NoComma;\nConstruction,X,  ,Y ;")
	require.Len(t, objs, 2)
	assert.Equal(t, "material", objs[0].Type)
	assert.Equal(t, []string{"A", "B"}, objs[0].Fields)
	assert.Equal(t, "construction", objs[1].Type)
	assert.Equal(t, []string{"X", "Y"}, objs[1].Fields)
}

func TestSplit_TypeTokenNormalized(t *testing.T) {
	objs := Split("Window Material : Simple Glazing System, G, 1.1;")
	require.Len(t, objs, 1)
	assert.Equal(t, TypeSimpleGlazing, objs[0].Type)
}

func TestClean(t *testing.T) {
	in := "Material, A,\tB,\u00a0C\u200bD ! trailing; comment\n"
	assert.Equal(t, "Material, A, B, CD \n", Clean(in))
}

func TestParseString(t *testing.T) {
	lib := domain.NewLibrary()
	res := newTestParser().ParseString(lib, "sample.idf", sampleIDF)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, 2, res.Materials)
	assert.Equal(t, 2, res.Resistances)
	assert.Equal(t, 1, res.Glazings)
	assert.Equal(t, 1, res.Constructions)
	assert.Equal(t, 6, res.Records())

	beton := lib.Materials["Beton_20cm"]
	require.NotNil(t, beton)
	assert.Equal(t, "MediumRough", beton.Roughness)
	assert.Equal(t, 0.20, beton.Thickness)
	assert.Equal(t, 2.0, beton.Conductivity)
	assert.Equal(t, 2400.0, beton.Density)
	assert.Equal(t, 1000.0, beton.SpecificHeat)
	assert.Equal(t, domain.DefaultThermalAbsorptance, beton.ThermalAbsorptance)
	assert.Equal(t, domain.DefaultSolarAbsorptance, beton.SolarAbsorptance)
	assert.Equal(t, domain.DefaultVisibleAbsorptance, beton.VisibleAbsorptance)

	daemmung := lib.Materials["Daemmung_10cm"]
	require.NotNil(t, daemmung)
	assert.Equal(t, 0.85, daemmung.ThermalAbsorptance)
	assert.Equal(t, 0.6, daemmung.SolarAbsorptance)
	assert.Equal(t, 0.5, daemmung.VisibleAbsorptance)

	assert.Equal(t, 0.02, lib.Resistances["Putz_Aussen"])
	assert.Equal(t, 0.18, lib.Resistances["Luftschicht_4cm"])
	assert.Equal(t, 0.6, lib.GlazingU["Glas_3fach"])

	c := lib.Constructions["AT_Außenwand_Test"]
	require.NotNil(t, c)
	assert.Equal(t, []string{"Beton_20cm", "Daemmung_10cm"}, c.Layers)
	assert.Nil(t, c.UValue)
}

func TestParseString_SameTextTwiceIsStable(t *testing.T) {
	p := newTestParser()
	once := domain.NewLibrary()
	p.ParseString(once, "a.idf", sampleIDF)

	twice := domain.NewLibrary()
	p.ParseString(twice, "a.idf", sampleIDF)
	p.ParseString(twice, "a.idf", sampleIDF)

	assert.Equal(t, once, twice)
}

func TestParseString_LastWriteWins(t *testing.T) {
	lib := domain.NewLibrary()
	p := newTestParser()
	p.ParseString(lib, "a.idf", "Material, M, R, 0.1, 1.0, 100, 800;")
	p.ParseString(lib, "b.idf", "Material, M, R, 0.3, 1.0, 100, 800;")

	require.Contains(t, lib.Materials, "M")
	assert.Equal(t, 0.3, lib.Materials["M"].Thickness)
}

func TestParseString_MalformedRecordsSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewParser(logger.FromZap(zap.New(core)))

	text := `
Material, TooShort, Rough, 0.1, 1.0;
Material, BadNumber, Rough, abc, 1.0, 100, 800;
Material:NoMass, NoR, Smooth;
Material:AirGap, Gap;
WindowMaterial:SimpleGlazingSystem, G, high;
Material, Good, Rough, 0.1, 1.0, 100, 800;
`
	lib := domain.NewLibrary()
	res := p.ParseString(lib, "broken.idf", text)

	assert.Len(t, res.Warnings, 5)
	assert.Equal(t, 1, res.Materials)
	assert.Contains(t, lib.Materials, "Good")
	assert.NotContains(t, lib.Materials, "TooShort")
	assert.NotContains(t, lib.Materials, "BadNumber")
	assert.Empty(t, lib.Resistances)
	assert.Empty(t, lib.GlazingU)

	assert.Equal(t, "broken.idf", res.Warnings[1].Source)
	assert.Equal(t, "BadNumber", res.Warnings[1].Name)
	assert.Equal(t, 5, logs.FilterMessage("skipping idf record").Len())
}

func TestParseString_BadOptionalAbsorptanceSkipsRecord(t *testing.T) {
	lib := domain.NewLibrary()
	res := newTestParser().ParseString(lib, "x.idf", "Material, M, R, 0.1, 1.0, 100, 800, dark;")
	assert.Len(t, res.Warnings, 1)
	assert.Empty(t, lib.Materials)
}

func TestParseString_NonFiniteNumbersSkipRecord(t *testing.T) {
	text := `
Material, NaNThick, Rough, nan, 1.0, 100, 800;
Material, InfLambda, Rough, 0.1, +Inf, 100, 800;
Material, Overflow, Rough, 0.1, 1e400, 100, 800;
Material:NoMass, NaNR, Smooth, NaN;
WindowMaterial:SimpleGlazingSystem, InfGlas, -inf, 0.5;
Material, Groß, Rough, 0.1, 1.0, 1e200, 1e200;
`
	lib := domain.NewLibrary()
	res := newTestParser().ParseString(lib, "x.idf", text)

	require.Len(t, res.Warnings, 5)
	for _, w := range res.Warnings[:2] {
		assert.Contains(t, w.Reason, "not a finite number")
	}
	require.Len(t, lib.Materials, 1)
	assert.Contains(t, lib.Materials, "Groß")
	assert.Empty(t, lib.Resistances)
	assert.Empty(t, lib.GlazingU)
}

func TestParseString_UnknownTypesIgnored(t *testing.T) {
	lib := domain.NewLibrary()
	res := newTestParser().ParseString(lib, "x.idf", "Zone, Wohnzimmer, 0, 0, 0, 0;\nVersion, 24.1;")
	assert.Empty(t, res.Warnings)
	assert.Zero(t, res.Records())
}

func TestDecode_Windows1252Fallback(t *testing.T) {
	data := []byte("Construction, AT_Au\xdfenwand, D\xe4mmung;")
	text, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Construction, AT_Außenwand, Dämmung;", text)
}

func TestDecode_StripsBOM(t *testing.T) {
	text, err := Decode([]byte("\xef\xbb\xbfVersion, 24.1;"))
	require.NoError(t, err)
	assert.Equal(t, "Version, 24.1;", text)
}

func TestParse_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walls.idf")
	require.NoError(t, os.WriteFile(path, []byte(sampleIDF), 0o644))

	lib := domain.NewLibrary()
	res, err := newTestParser().Parse(lib, path)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Records())

	_, err = newTestParser().Parse(lib, filepath.Join(dir, "missing.idf"))
	assert.Error(t, err)
}
