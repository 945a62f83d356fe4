package service

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/cache"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/export"
	"github.com/eplus-at/eplus-resources/internal/resource_management/report"
)

const wallsIDF = `
Material, Beton_20cm, MediumRough, 0.20, 2.0, 2400, 1000;
Material, Daemmung_10cm, Rough, 0.10, 0.04, 20, 1400;
Construction, AT_Außenwand_Test, Beton_20cm, Daemmung_10cm;
Construction, Wand_Ohne_Prefix, Beton_20cm, Geist;
`

func setup(t *testing.T, autoCache bool) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	res := filepath.Join(root, "resources")
	require.NoError(t, os.MkdirAll(filepath.Join(res, "walls"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(res, "walls", "walls.idf"), []byte(wallsIDF), 0o644))

	m, err := Open(Options{
		ResourcesPath: res,
		CacheDir:      filepath.Join(root, "cache"),
		AutoCache:     autoCache,
		ProjectsDir:   filepath.Join(root, "projects"),
		TemplatesDir:  filepath.Join(root, "templates"),
	}, logger.NewNop())
	require.NoError(t, err)
	return m, root
}

func TestOpen_LoadsAndCaches(t *testing.T) {
	m, root := setup(t, true)

	stats := m.Stats()
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 4, stats.Records)

	cons, err := cache.Read(filepath.Join(root, "cache", cache.ConstructionsFile))
	require.NoError(t, err)
	require.Len(t, cons.Rows, 2)
	assert.Equal(t, "0.362", cons.Index()["AT_Außenwand_Test"][report.ColUValue])
	assert.NotEmpty(t, cons.Index()["AT_Außenwand_Test"][cache.UpdatedColumn])

	assert.FileExists(t, filepath.Join(root, "cache", cache.MaterialsFile))
}

func TestOpen_NoAutoCache(t *testing.T) {
	_, root := setup(t, false)
	assert.NoFileExists(t, filepath.Join(root, "cache", cache.MaterialsFile))
}

func TestOpen_MissingResourcesGivesEmptyLibrary(t *testing.T) {
	m, err := Open(Options{ResourcesPath: filepath.Join(t.TempDir(), "nope"), CacheDir: t.TempDir()}, logger.NewNop())
	require.NoError(t, err)
	assert.Zero(t, m.Stats().Files)
	assert.Zero(t, m.Validate().Total())
}

func TestManager_ValidateAndCompute(t *testing.T) {
	m, _ := setup(t, false)

	u := m.ComputeUValue("AT_Außenwand_Test")
	require.NotNil(t, u)
	assert.InDelta(t, 0.3617, *u, 1e-4)
	assert.Nil(t, m.ComputeUValue("Nope"))

	issues := m.Validate()
	assert.Len(t, issues[domain.IssueUValueTooHigh], 1)
	assert.Empty(t, issues[domain.IssuePassivhausReady])
	assert.Equal(t, []string{"Wand_Ohne_Prefix: missing 'AT_' prefix"}, issues[domain.IssueNamingConvention])
	assert.Equal(t, []string{"Wand_Ohne_Prefix: material 'Geist' not found"}, issues[domain.IssueMissingMaterials])
}

func TestManager_Construction(t *testing.T) {
	m, _ := setup(t, false)

	d, err := m.Construction("AT_Außenwand_Test")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryExteriorWall, d.Construction.Category)
	require.NotNil(t, d.Construction.UValue)
	require.NotNil(t, d.Result)
	assert.Len(t, d.Result.Layers, 2)
	assert.Empty(t, d.Error)

	_, err = m.Construction("Nope")
	assert.ErrorIs(t, err, domain.ErrConstructionNotFound)
}

func TestManager_ReloadPicksUpNewFiles(t *testing.T) {
	m, root := setup(t, false)
	extra := "Construction, AT_Dach_Neu, Beton_20cm;"
	require.NoError(t, os.WriteFile(filepath.Join(root, "resources", "dach.IDF"), []byte(extra), 0o644))

	stats, err := m.Reload()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
	assert.Len(t, m.ConstructionsTable().Rows, 3)
}

func TestManager_UpdateCacheOverrideDir(t *testing.T) {
	m, root := setup(t, false)
	dir := filepath.Join(root, "elsewhere")
	require.NoError(t, m.UpdateCache(dir))
	assert.FileExists(t, filepath.Join(dir, cache.MaterialsFile))
	assert.FileExists(t, filepath.Join(dir, cache.ConstructionsFile))
}

func TestResolvePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "missing")
	assert.Equal(t, abs, ResolvePath(abs))

	wd := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(wd, "resources"), 0o755))
	prevWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	assert.Equal(t, "resources", ResolvePath("resources"))
	assert.Equal(t, "nowhere_to_be_found", ResolvePath("nowhere_to_be_found"))

	exe, err := os.Executable()
	require.NoError(t, err)
	name := "resolve_path_fixture_" + filepath.Base(wd)
	beside := filepath.Join(filepath.Dir(exe), name)
	require.NoError(t, os.MkdirAll(beside, 0o755))
	t.Cleanup(func() { _ = os.RemoveAll(beside) })
	assert.Equal(t, filepath.Clean(beside), ResolvePath(name))
}

func TestManager_TablesShareOneLibrary(t *testing.T) {
	m, root := setup(t, false)
	file := filepath.Join(root, "resources", "walls", "walls.idf")
	variants := []string{
		"Material, Alpha_Mat, Rough, 0.1, 1.0, 100, 800;\nConstruction, AT_Alpha, Alpha_Mat;\n",
		"Material, Beta_Mat, Rough, 0.1, 1.0, 100, 800;\nConstruction, AT_Beta, Beta_Mat;\n",
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			tmp := file + ".tmp"
			if err := os.WriteFile(tmp, []byte(variants[i%2]), 0o644); err != nil {
				return
			}
			if err := os.Rename(tmp, file); err != nil {
				return
			}
			_, _ = m.Reload()
		}
	}()

	for i := 0; i < 50; i++ {
		materials, constructions := m.tables()
		mats, cons := materials.Index(), constructions.Index()
		_, alphaMat := mats["Alpha_Mat"]
		_, alphaCon := cons["AT_Alpha"]
		_, betaMat := mats["Beta_Mat"]
		_, betaCon := cons["AT_Beta"]
		assert.Equal(t, alphaMat, alphaCon, "iteration %d", i)
		assert.Equal(t, betaMat, betaCon, "iteration %d", i)
	}
	wg.Wait()
}

func TestManager_Exports(t *testing.T) {
	m, root := setup(t, false)

	xlsx := filepath.Join(root, "out", "db.xlsx")
	require.NoError(t, m.ExportExcel(xlsx))
	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	rows, err := f.GetRows(export.SheetValidation)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	require.NoError(t, f.Close())

	require.NoError(t, m.ExportIssues(filepath.Join(root, "out", "issues.json")))
	assert.FileExists(t, filepath.Join(root, "out", "issues.json"))
}

func TestCreateProject(t *testing.T) {
	m, root := setup(t, false)
	templates := filepath.Join(root, "templates")
	require.NoError(t, os.MkdirAll(templates, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "salzburg_efh_template.idf"), []byte("Version, 24.1;"), 0o644))

	p, err := m.CreateProject("Haus_Mueller", "EFH")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "projects", "Haus_Mueller"), p.Path)
	for _, d := range ProjectDirs {
		assert.DirExists(t, filepath.Join(p.Path, d))
	}
	data, err := os.ReadFile(p.IDF)
	require.NoError(t, err)
	assert.Equal(t, "Version, 24.1;", string(data))

	// existing model is kept
	require.NoError(t, os.WriteFile(p.IDF, []byte("edited"), 0o644))
	p, err = m.CreateProject("Haus_Mueller", "EFH")
	require.NoError(t, err)
	data, _ = os.ReadFile(p.IDF)
	assert.Equal(t, "edited", string(data))
}

func TestCreateProject_GenericWithoutTemplate(t *testing.T) {
	m, _ := setup(t, false)
	p, err := m.CreateProject("Buero", "MFH")
	require.NoError(t, err)
	assert.Empty(t, p.IDF)
	assert.DirExists(t, filepath.Join(p.Path, "weather"))
}

func TestCreateProject_InvalidName(t *testing.T) {
	m, _ := setup(t, false)
	for _, name := range []string{"", "..", "a/b", "."} {
		_, err := m.CreateProject(name, "EFH")
		assert.ErrorIs(t, err, domain.ErrInvalidProjectName, name)
	}
}

func TestTemplateFor(t *testing.T) {
	assert.Equal(t, "salzburg_efh_template.idf", TemplateFor("EFH"))
	assert.Equal(t, "salzburg_efh_template.idf", TemplateFor("efh"))
	assert.Equal(t, "generic_template.idf", TemplateFor("MFH"))
}
