package cache

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/report"
)

const (
	MaterialsFile     = "materials.csv"
	ConstructionsFile = "constructions.csv"
)

// Cache persists report tables under one directory.
type Cache struct {
	dir string
	log *logger.Logger
	now func() time.Time
}

func New(dir string, log *logger.Logger) *Cache {
	return &Cache{dir: dir, log: log.With("component", "cache"), now: time.Now}
}

// WithClock replaces the stamp source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func (c *Cache) Dir() string { return c.dir }

// Update merges t into the named cache file and writes it back. An
// unreadable prior file is treated as empty.
func (c *Cache) Update(file string, t report.Table) (report.Table, error) {
	path := filepath.Join(c.dir, file)

	prior, err := Read(path)
	if err != nil {
		c.log.Warn("ignoring unreadable cache", "path", path, "error", err)
		prior = report.Table{}
	}

	merged := Merge(prior, t, c.now().Format("2006-01-02T15:04:05"))
	if err := Write(path, merged); err != nil {
		return report.Table{}, err
	}
	return merged, nil
}

// Refresh updates both the material and the construction cache.
func (c *Cache) Refresh(materials, constructions report.Table) error {
	if _, err := c.Update(MaterialsFile, materials); err != nil {
		return fmt.Errorf("materials cache: %w", err)
	}
	if _, err := c.Update(ConstructionsFile, constructions); err != nil {
		return fmt.Errorf("constructions cache: %w", err)
	}
	c.log.Info("cache updated",
		"materials", filepath.Join(c.dir, MaterialsFile),
		"constructions", filepath.Join(c.dir, ConstructionsFile),
	)
	return nil
}
