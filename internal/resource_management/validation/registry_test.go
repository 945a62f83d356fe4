package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
)

type stubRule struct {
	name     string
	category domain.IssueCategory
}

func (r stubRule) Name() string                   { return r.name }
func (r stubRule) Category() domain.IssueCategory { return r.category }
func (r stubRule) Check(Subject) []Finding        { return nil }

func TestRegistry_ReportOrder(t *testing.T) {
	g := newRegistry()
	g.add(stubRule{"zz_extra", "custom"})
	g.add(stubRule{"passivhaus", domain.IssuePassivhausReady})
	g.add(stubRule{"naming_b", domain.IssueNamingConvention})
	g.add(stubRule{"naming_a", domain.IssueNamingConvention})
	g.add(stubRule{"u_value", domain.IssueUValueTooHigh})

	var names []string
	for _, r := range g.list() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"u_value", "naming_a", "naming_b", "passivhaus", "zz_extra"}, names)
}

func TestRegistry_RejectsDuplicatesAndNil(t *testing.T) {
	g := newRegistry()
	g.add(stubRule{"naming", domain.IssueNamingConvention})

	assert.PanicsWithValue(t, `validation: Register called twice for rule "naming"`, func() {
		g.add(stubRule{"naming", domain.IssueMissingMaterials})
	})
	assert.Panics(t, func() { g.add(nil) })
	assert.Len(t, g.list(), 1)
	assert.Equal(t, domain.IssueNamingConvention, g.list()[0].Category())
}
