package rules

import (
	"fmt"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
	"github.com/eplus-at/eplus-resources/internal/resource_management/validation"
)

type missingMaterials struct{}

func (missingMaterials) Name() string                   { return "missing_materials" }
func (missingMaterials) Category() domain.IssueCategory { return domain.IssueMissingMaterials }

func (missingMaterials) Check(s validation.Subject) []validation.Finding {
	var out []validation.Finding
	for _, layer := range s.Construction.Layers {
		if s.Store.Resolve(layer) != store.LayerMissing {
			continue
		}
		out = append(out, validation.Finding{
			Category: domain.IssueMissingMaterials,
			Message:  fmt.Sprintf("%s: material '%s' not found", s.Construction.Name, layer),
		})
	}
	return out
}

func init() { validation.Register(missingMaterials{}) }
