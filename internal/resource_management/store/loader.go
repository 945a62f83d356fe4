package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/idf"
)

// LoadStats summarizes one directory scan.
type LoadStats struct {
	Files       int           `json:"files"`
	FailedFiles []string      `json:"failed_files,omitempty"`
	Records     int           `json:"records"`
	Warnings    []idf.Warning `json:"warnings,omitempty"`
}

// FindIDFFiles returns every *.idf file below root, matching the extension
// case-insensitively, in lexical walk order.
func FindIDFFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".idf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// LoadDir builds a fresh store from every IDF file below root. A file that
// cannot be read is logged and skipped; the scan continues.
func LoadDir(root string, log *logger.Logger) (*Store, LoadStats, error) {
	log = log.With("component", "resource_loader")

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, LoadStats{}, fmt.Errorf("%w: %s", domain.ErrResourcesNotFound, root)
	}

	files, err := FindIDFFiles(root)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("scan %s: %w", root, err)
	}

	parser := idf.NewParser(log)
	s := New()
	stats := LoadStats{Files: len(files)}
	for _, path := range files {
		res, err := parser.Parse(s.lib, path)
		if err != nil {
			log.Error("failed to load idf file", "file", path, "error", err)
			stats.FailedFiles = append(stats.FailedFiles, path)
			continue
		}
		stats.Records += res.Records()
		stats.Warnings = append(stats.Warnings, res.Warnings...)
		log.Debug("loaded idf file", "file", path, "records", res.Records())
	}

	log.Info("resources loaded",
		"root", root,
		"files", stats.Files,
		"materials", len(s.lib.Materials),
		"resistances", len(s.lib.Resistances),
		"glazings", len(s.lib.GlazingU),
		"constructions", len(s.lib.Constructions),
		"warnings", len(stats.Warnings),
	)
	return s, stats, nil
}
