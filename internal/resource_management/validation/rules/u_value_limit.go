package rules

import (
	"fmt"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/validation"
)

type uValueLimit struct{}

func (uValueLimit) Name() string                   { return "u_value_limit" }
func (uValueLimit) Category() domain.IssueCategory { return domain.IssueUValueTooHigh }

func (uValueLimit) Check(s validation.Subject) []validation.Finding {
	if s.UValue == nil {
		return nil
	}
	limits, ok := domain.LimitsFor(s.Category)
	if !ok || *s.UValue <= limits.Legal {
		return nil
	}
	return []validation.Finding{{
		Category: domain.IssueUValueTooHigh,
		Message:  fmt.Sprintf("%s: %.3f W/m²K (limit: %g W/m²K)", s.Construction.Name, *s.UValue, limits.Legal),
	}}
}

func init() { validation.Register(uValueLimit{}) }
