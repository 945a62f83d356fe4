package rules

import (
	"fmt"
	"strings"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/validation"
)

// NamePrefix marks constructions that belong to the Austrian library.
const NamePrefix = "AT_"

type naming struct{}

func (naming) Name() string                   { return "naming_convention" }
func (naming) Category() domain.IssueCategory { return domain.IssueNamingConvention }

func (naming) Check(s validation.Subject) []validation.Finding {
	if strings.HasPrefix(s.Construction.Name, NamePrefix) {
		return nil
	}
	return []validation.Finding{{
		Category: domain.IssueNamingConvention,
		Message:  fmt.Sprintf("%s: missing '%s' prefix", s.Construction.Name, NamePrefix),
	}}
}

func init() { validation.Register(naming{}) }
