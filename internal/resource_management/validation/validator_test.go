package validation_test

import (
	"testing"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/idf"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
	"github.com/eplus-at/eplus-resources/internal/resource_management/uvalue"
	"github.com/eplus-at/eplus-resources/internal/resource_management/validation"
	_ "github.com/eplus-at/eplus-resources/internal/resource_management/validation/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const library = `
Material, Beton_20cm, MediumRough, 0.20, 2.0, 2400, 1000;
Material, Daemmung_10cm, Rough, 0.10, 0.04, 20, 1400;
Material, Daemmung_30cm, Rough, 0.30, 0.035, 20, 1400;
WindowMaterial:SimpleGlazingSystem, Glas_3fach, 0.7, 0.5;

Construction, AT_Außenwand_Test, Beton_20cm, Daemmung_10cm;
Construction, AT_Außenwand_Passiv, Beton_20cm, Daemmung_30cm;
Construction, AT_Fenster_3fach, Glas_3fach;
Construction, Dach_Ohne_Prefix, Beton_20cm, Phantom_Layer, Luftschicht;
`

func newValidator(t *testing.T, text string) (*validation.Validator, *store.Store) {
	t.Helper()
	log := logger.NewNop()
	lib := domain.NewLibrary()
	res := idf.NewParser(log).ParseString(lib, "test.idf", text)
	require.Empty(t, res.Warnings)

	s := store.FromLibrary(lib)
	return validation.New(s, uvalue.New(s, log), log), s
}

func TestValidate(t *testing.T) {
	v, s := newValidator(t, library)
	issues := v.Validate()

	require.Len(t, issues, 4)
	assert.Equal(t, []string{
		"AT_Außenwand_Test: 0.362 W/m²K (limit: 0.35 W/m²K)",
		"Dach_Ohne_Prefix: 2.299 W/m²K (limit: 0.2 W/m²K)",
	}, issues[domain.IssueUValueTooHigh])
	assert.Equal(t, []string{
		"AT_Außenwand_Passiv: 0.113 W/m²K",
		"AT_Fenster_3fach: 0.700 W/m²K",
	}, issues[domain.IssuePassivhausReady])
	assert.Equal(t, []string{"Dach_Ohne_Prefix: missing 'AT_' prefix"}, issues[domain.IssueNamingConvention])
	assert.Equal(t, []string{"Dach_Ohne_Prefix: material 'Phantom_Layer' not found"}, issues[domain.IssueMissingMaterials])

	con, _ := s.Construction("AT_Außenwand_Test")
	assert.Equal(t, domain.CategoryExteriorWall, con.Category)
	require.NotNil(t, con.UValue)
	assert.InDelta(t, 0.3617, *con.UValue, 1e-4)
}

func TestValidate_Empty(t *testing.T) {
	v, _ := newValidator(t, "")
	issues := v.Validate()
	require.Len(t, issues, 4)
	assert.Zero(t, issues.Total())
}

func TestValidate_NilUValueStillChecksNamesAndLayers(t *testing.T) {
	v, _ := newValidator(t, "Material, Neg, R, -5, 1, 1, 1;\nConstruction, Broken_Wand, Neg, Ghost;")
	issues := v.Validate()

	assert.Empty(t, issues[domain.IssueUValueTooHigh])
	assert.Empty(t, issues[domain.IssuePassivhausReady])
	assert.Equal(t, []string{"Broken_Wand: missing 'AT_' prefix"}, issues[domain.IssueNamingConvention])
	assert.Equal(t, []string{"Broken_Wand: material 'Ghost' not found"}, issues[domain.IssueMissingMaterials])
}

type alwaysFlag struct{}

func (alwaysFlag) Name() string                   { return "always" }
func (alwaysFlag) Category() domain.IssueCategory { return domain.IssueNamingConvention }
func (alwaysFlag) Check(s validation.Subject) []validation.Finding {
	return []validation.Finding{{Category: domain.IssueNamingConvention, Message: s.Construction.Name}}
}

func TestValidate_ExplicitRules(t *testing.T) {
	log := logger.NewNop()
	lib := domain.NewLibrary()
	lib.Constructions["AT_A"] = &domain.Construction{Name: "AT_A", Layers: []string{"x"}}
	s := store.FromLibrary(lib)

	issues := validation.New(s, uvalue.New(s, log), log, alwaysFlag{}).Validate()
	assert.Equal(t, []string{"AT_A"}, issues[domain.IssueNamingConvention])
	assert.Empty(t, issues[domain.IssueMissingMaterials])
}
