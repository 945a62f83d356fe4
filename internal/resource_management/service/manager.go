package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/cache"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/export"
	"github.com/eplus-at/eplus-resources/internal/resource_management/report"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
	"github.com/eplus-at/eplus-resources/internal/resource_management/uvalue"
	"github.com/eplus-at/eplus-resources/internal/resource_management/validation"

	_ "github.com/eplus-at/eplus-resources/internal/resource_management/validation/rules"
)

type Options struct {
	ResourcesPath string
	CacheDir      string
	AutoCache     bool
	ProjectsDir   string
	TemplatesDir  string
}

// Manager owns one loaded resource library and everything derived from
// it. Calculations write U-values back into the library, so all access
// goes through the mutex.
type Manager struct {
	mu        sync.RWMutex
	opts      Options
	store     *store.Store
	calc      *uvalue.Calculator
	validator *validation.Validator
	stats     store.LoadStats
	cache     *cache.Cache
	log       *logger.Logger
	now       func() time.Time
}

// Open resolves the resources directory, loads every IDF below it and,
// with AutoCache set, refreshes the tabular cache.
func Open(opts Options, log *logger.Logger) (*Manager, error) {
	if opts.ProjectsDir == "" {
		opts.ProjectsDir = "projects"
	}
	if opts.TemplatesDir == "" {
		opts.TemplatesDir = "templates"
	}
	opts.ResourcesPath = ResolvePath(opts.ResourcesPath)

	m := &Manager{
		opts:  opts,
		cache: cache.New(opts.CacheDir, log),
		log:   log.With("component", "resource_manager"),
		now:   time.Now,
	}
	m.log.Info("searching idf files", "path", opts.ResourcesPath)

	if _, err := m.Reload(); err != nil {
		return nil, err
	}
	if opts.AutoCache {
		if err := m.UpdateCache(""); err != nil {
			m.log.Warn("cache refresh failed", "error", err)
		}
	}
	return m, nil
}

// ResolvePath returns path unchanged when it exists or is absolute;
// otherwise it looks for it next to the executable and up to two levels
// above it.
func ResolvePath(path string) string {
	if filepath.IsAbs(path) || exists(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	dir := filepath.Dir(exe)
	for _, c := range []string{
		filepath.Join(dir, path),
		filepath.Join(dir, "..", path),
		filepath.Join(dir, "..", "..", path),
	} {
		if exists(c) {
			return filepath.Clean(c)
		}
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Reload rebuilds the library from disk. A missing resources directory
// leaves an empty library.
func (m *Manager) Reload() (store.LoadStats, error) {
	s, stats, err := store.LoadDir(m.opts.ResourcesPath, m.log)
	if errors.Is(err, domain.ErrResourcesNotFound) {
		m.log.Warn("resources directory not found, library is empty", "path", m.opts.ResourcesPath)
		s, stats, err = store.New(), store.LoadStats{}, nil
	}
	if err != nil {
		return store.LoadStats{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = s
	m.stats = stats
	m.calc = uvalue.New(s, m.log)
	m.validator = validation.New(s, m.calc, m.log)
	return stats, nil
}

func (m *Manager) Stats() store.LoadStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *Manager) MaterialsTable() report.Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return report.MaterialsTable(m.store)
}

func (m *Manager) ConstructionsTable() report.Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	return report.ConstructionsTable(m.store, m.calc)
}

// ComputeUValue returns the U-value of one construction, nil on failure.
func (m *Manager) ComputeUValue(name string) *float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calc.Compute(name)
}

// ConstructionDetail is a construction together with its calculation
// breakdown.
type ConstructionDetail struct {
	Construction domain.Construction `json:"construction"`
	Result       *uvalue.Result      `json:"result,omitempty"`
	Error        string              `json:"error,omitempty"`
}

func (m *Manager) Construction(name string) (ConstructionDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	con, ok := m.store.Construction(name)
	if !ok {
		return ConstructionDetail{}, fmt.Errorf("%w: %s", domain.ErrConstructionNotFound, name)
	}
	m.calc.Compute(name)
	con.Category = domain.Categorize(name)

	detail := ConstructionDetail{Construction: *con}
	res, err := m.calc.Calculate(name)
	if err != nil {
		detail.Error = err.Error()
	}
	detail.Result = &res
	return detail, nil
}

func (m *Manager) Validate() domain.Issues {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validator.Validate()
}

// UpdateCache merges the current tables into the cache. An empty dir uses
// the configured cache directory.
func (m *Manager) UpdateCache(dir string) error {
	c := m.cache
	if dir != "" && dir != c.Dir() {
		c = cache.New(dir, m.log)
	}
	return c.Refresh(m.tables())
}

// tables builds both tables from the same library so a concurrent Reload
// cannot land between them.
func (m *Manager) tables() (materials, constructions report.Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return report.MaterialsTable(m.store), report.ConstructionsTable(m.store, m.calc)
}

func (m *Manager) ExportExcel(path string) error {
	m.mu.Lock()
	materials := report.MaterialsTable(m.store)
	constructions := report.ConstructionsTable(m.store, m.calc)
	issues := m.validator.Validate()
	m.mu.Unlock()

	if err := export.WriteExcel(path, materials, constructions, issues); err != nil {
		return err
	}
	m.log.Info("excel report written", "path", path)
	return nil
}

func (m *Manager) ExportIssues(path string) error {
	if err := export.WriteIssues(path, m.Validate(), m.now()); err != nil {
		return err
	}
	m.log.Info("issue report written", "path", path)
	return nil
}
