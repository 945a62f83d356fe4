package rules

import (
	"fmt"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/validation"
)

type passivhaus struct{}

func (passivhaus) Name() string                   { return "passivhaus_ready" }
func (passivhaus) Category() domain.IssueCategory { return domain.IssuePassivhausReady }

func (passivhaus) Check(s validation.Subject) []validation.Finding {
	if s.UValue == nil {
		return nil
	}
	limits, ok := domain.LimitsFor(s.Category)
	if !ok || *s.UValue > limits.LowEnergy {
		return nil
	}
	return []validation.Finding{{
		Category: domain.IssuePassivhausReady,
		Message:  fmt.Sprintf("%s: %.3f W/m²K", s.Construction.Name, *s.UValue),
	}}
}

func init() { validation.Register(passivhaus{}) }
