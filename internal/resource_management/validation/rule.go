package validation

import (
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
)

// Subject is everything a rule may inspect about one construction.
type Subject struct {
	Construction *domain.Construction
	Category     domain.EnvelopeCategory
	UValue       *float64
	Store        *store.Store
}

type Finding struct {
	Category domain.IssueCategory
	Message  string
}

// Rule checks one construction. Category is the bucket its findings are
// reported under and decides where the rule runs in the registry order.
type Rule interface {
	Name() string
	Category() domain.IssueCategory
	Check(s Subject) []Finding
}
