package validation

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
)

type registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

func newRegistry() *registry {
	return &registry{rules: make(map[string]Rule)}
}

var defaultRegistry = newRegistry()

// Register adds r to the rules New runs by default. Rules register from
// init, so a nil rule or a name registered twice panics.
func Register(r Rule) {
	defaultRegistry.add(r)
}

// All returns the registered rules in report order.
func All() []Rule {
	return defaultRegistry.list()
}

func (g *registry) add(r Rule) {
	if r == nil {
		panic("validation: Register rule is nil")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, dup := g.rules[r.Name()]; dup {
		panic(fmt.Sprintf("validation: Register called twice for rule %q", r.Name()))
	}
	g.rules[r.Name()] = r
}

// list orders rules by the position of their category in
// domain.IssueCategories, then by name. Unknown categories go last.
func (g *registry) list() []Rule {
	g.mu.RLock()
	out := make([]Rule, 0, len(g.rules))
	for _, r := range g.rules {
		out = append(out, r)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ri, rj := categoryRank(out[i].Category()), categoryRank(out[j].Category())
		if ri != rj {
			return ri < rj
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

func categoryRank(c domain.IssueCategory) int {
	if i := slices.Index(domain.IssueCategories, c); i >= 0 {
		return i
	}
	return len(domain.IssueCategories)
}
