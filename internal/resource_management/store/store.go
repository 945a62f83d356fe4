package store

import (
	"regexp"
	"sort"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
)

// LayerKind tells which table a layer name resolved to.
type LayerKind int

const (
	LayerMissing LayerKind = iota
	LayerMaterial
	LayerResistance
	LayerGlazing
	LayerAirPattern
)

func (k LayerKind) String() string {
	switch k {
	case LayerMaterial:
		return "material"
	case LayerResistance:
		return "resistance"
	case LayerGlazing:
		return "glazing"
	case LayerAirPattern:
		return "air_pattern"
	default:
		return "missing"
	}
}

var airGapRe = regexp.MustCompile(`(?i)luft|air|gap`)

// IsAirGapName reports whether an unresolved layer name denotes an air
// cavity by convention.
func IsAirGapName(name string) bool {
	return airGapRe.MatchString(name)
}

// Store holds the thermal records of one resource scan.
type Store struct {
	lib *domain.Library
}

func New() *Store {
	return &Store{lib: domain.NewLibrary()}
}

// FromLibrary wraps an already populated library.
func FromLibrary(lib *domain.Library) *Store {
	if lib == nil {
		lib = domain.NewLibrary()
	}
	return &Store{lib: lib}
}

func (s *Store) Library() *domain.Library { return s.lib }

func (s *Store) Material(name string) (*domain.Material, bool) {
	m, ok := s.lib.Materials[name]
	return m, ok
}

func (s *Store) Resistance(name string) (float64, bool) {
	r, ok := s.lib.Resistances[name]
	return r, ok
}

func (s *Store) GlazingU(name string) (float64, bool) {
	u, ok := s.lib.GlazingU[name]
	return u, ok
}

func (s *Store) Construction(name string) (*domain.Construction, bool) {
	c, ok := s.lib.Constructions[name]
	return c, ok
}

// Resolve classifies a layer name. Tables are consulted in the order
// material, no-mass resistance, glazing, then the air-gap name pattern.
func (s *Store) Resolve(layer string) LayerKind {
	if _, ok := s.lib.Materials[layer]; ok {
		return LayerMaterial
	}
	if _, ok := s.lib.Resistances[layer]; ok {
		return LayerResistance
	}
	if _, ok := s.lib.GlazingU[layer]; ok {
		return LayerGlazing
	}
	if IsAirGapName(layer) {
		return LayerAirPattern
	}
	return LayerMissing
}

func (s *Store) MaterialNames() []string {
	return sortedKeys(s.lib.Materials)
}

func (s *Store) ResistanceNames() []string {
	return sortedKeys(s.lib.Resistances)
}

func (s *Store) GlazingNames() []string {
	return sortedKeys(s.lib.GlazingU)
}

func (s *Store) ConstructionNames() []string {
	return sortedKeys(s.lib.Constructions)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
