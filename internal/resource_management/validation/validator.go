package validation

import (
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
	"github.com/eplus-at/eplus-resources/internal/resource_management/uvalue"
)

type Validator struct {
	store *store.Store
	calc  *uvalue.Calculator
	rules []Rule
	log   *logger.Logger
}

// New builds a validator over the registered rules. Passing rules
// explicitly replaces the registry.
func New(s *store.Store, calc *uvalue.Calculator, log *logger.Logger, rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = All()
	}
	return &Validator{store: s, calc: calc, rules: rules, log: log.With("component", "validator")}
}

// Validate computes and categorizes every construction, then runs each
// rule against it. A construction whose U-value cannot be computed still
// gets the naming and layer checks.
func (v *Validator) Validate() domain.Issues {
	issues := domain.NewIssues()
	for _, name := range v.store.ConstructionNames() {
		con, _ := v.store.Construction(name)
		con.Category = domain.Categorize(name)

		subject := Subject{
			Construction: con,
			Category:     con.Category,
			UValue:       v.calc.Compute(name),
			Store:        v.store,
		}
		for _, r := range v.rules {
			for _, f := range r.Check(subject) {
				issues.Add(f.Category, f.Message)
			}
		}
	}

	v.log.Info("validation finished",
		"constructions", len(v.store.ConstructionNames()),
		"u_value_too_high", len(issues[domain.IssueUValueTooHigh]),
		"missing_materials", len(issues[domain.IssueMissingMaterials]),
		"naming_convention", len(issues[domain.IssueNamingConvention]),
		"passivhaus_ready", len(issues[domain.IssuePassivhausReady]),
	)
	return issues
}
