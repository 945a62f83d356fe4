package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
)

// IssueReport is the serialized form of one validation run.
type IssueReport struct {
	GeneratedAt time.Time                         `json:"generated_at" yaml:"generated_at"`
	Total       int                               `json:"total" yaml:"total"`
	Counts      map[domain.IssueCategory]int      `json:"counts" yaml:"counts"`
	Issues      map[domain.IssueCategory][]string `json:"issues" yaml:"issues"`
}

func NewIssueReport(issues domain.Issues, at time.Time) IssueReport {
	r := IssueReport{
		GeneratedAt: at.UTC(),
		Total:       issues.Total(),
		Counts:      make(map[domain.IssueCategory]int, len(issues)),
		Issues:      make(map[domain.IssueCategory][]string, len(issues)),
	}
	for _, c := range domain.IssueCategories {
		msgs := issues[c]
		if msgs == nil {
			msgs = []string{}
		}
		r.Counts[c] = len(msgs)
		r.Issues[c] = msgs
	}
	return r
}

func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func WriteYAML(path string, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// WriteIssues picks JSON or YAML by the extension of path.
func WriteIssues(path string, issues domain.Issues, at time.Time) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	rep := NewIssueReport(issues, at)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return WriteJSON(path, rep)
	case ".yaml", ".yml":
		return WriteYAML(path, rep)
	default:
		return fmt.Errorf("unsupported issue report format %q", filepath.Ext(path))
	}
}
