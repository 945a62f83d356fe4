package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
)

// BuildingTypeEFH is the single-family house template.
const BuildingTypeEFH = "EFH"

// Project subdirectories created for every scaffold.
var ProjectDirs = []string{"weather", "output", "scripts"}

type Project struct {
	Name string `json:"name"`
	Path string `json:"path"`
	// IDF is the copied template model, empty when no template was found.
	IDF string `json:"idf,omitempty"`
}

// TemplateFor names the template file used for a building type.
func TemplateFor(buildingType string) string {
	if strings.EqualFold(buildingType, BuildingTypeEFH) {
		return "salzburg_efh_template.idf"
	}
	return "generic_template.idf"
}

// CreateProject scaffolds projects/<name> with its working directories and
// copies the building type's template model when one exists. Re-running it
// on an existing project keeps the files already there.
func (m *Manager) CreateProject(name, buildingType string) (Project, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return Project{}, fmt.Errorf("%w: %q", domain.ErrInvalidProjectName, name)
	}

	root := filepath.Join(m.opts.ProjectsDir, name)
	for _, d := range ProjectDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return Project{}, fmt.Errorf("create project dir: %w", err)
		}
	}
	p := Project{Name: name, Path: root}

	src := filepath.Join(m.opts.TemplatesDir, TemplateFor(buildingType))
	dst := filepath.Join(root, name+".idf")
	switch {
	case exists(dst):
		p.IDF = dst
	case exists(src):
		if err := copyFile(src, dst); err != nil {
			return Project{}, fmt.Errorf("copy template: %w", err)
		}
		p.IDF = dst
	default:
		m.log.Warn("project template not found", "template", src)
	}

	m.log.Info("project created", "path", root, "building_type", buildingType)
	return p, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
