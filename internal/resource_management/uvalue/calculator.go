package uvalue

import (
	"fmt"
	"math"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
)

// Surface film and default cavity resistances in m²K/W.
const (
	InsideFilmResistance  = 0.125
	OutsideFilmResistance = 0.04
	SurfaceResistance     = InsideFilmResistance + OutsideFilmResistance
	AirGapResistance      = 0.17
)

// LayerContribution is the resistance one layer added to the total.
type LayerContribution struct {
	Layer      string  `json:"layer"`
	Kind       string  `json:"kind"`
	Resistance float64 `json:"resistance"`
}

// Result is the full breakdown of one transmittance calculation.
type Result struct {
	Construction    string              `json:"construction"`
	UValue          float64             `json:"u_value"`
	TotalResistance float64             `json:"total_resistance,omitempty"`
	GlazingLayer    string              `json:"glazing_layer,omitempty"`
	Layers          []LayerContribution `json:"layers,omitempty"`
	Missing         []string            `json:"missing,omitempty"`
}

type Calculator struct {
	store *store.Store
	log   *logger.Logger
}

func New(s *store.Store, log *logger.Logger) *Calculator {
	return &Calculator{store: s, log: log.With("component", "uvalue")}
}

// Calculate returns the transmittance breakdown for the named construction
// without touching the stored record.
func (c *Calculator) Calculate(name string) (Result, error) {
	con, ok := c.store.Construction(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", domain.ErrConstructionNotFound, name)
	}

	res := Result{Construction: name}

	// A simple glazing system describes the whole window, so the first
	// glazing layer replaces the layer sum.
	for _, layer := range con.Layers {
		if u, ok := c.store.GlazingU(layer); ok {
			if math.IsNaN(u) || math.IsInf(u, 0) {
				return res, fmt.Errorf("%w: %s (glazing %s)", domain.ErrNonFiniteUValue, name, layer)
			}
			res.UValue = u
			res.GlazingLayer = layer
			return res, nil
		}
	}

	total := SurfaceResistance
	for _, layer := range con.Layers {
		kind := c.store.Resolve(layer)
		lc := LayerContribution{Layer: layer, Kind: kind.String()}

		switch kind {
		case store.LayerMaterial:
			m, _ := c.store.Material(layer)
			if m.Conductivity == 0 {
				c.log.Warn("material has zero conductivity", "construction", name, "material", layer)
				break
			}
			lc.Resistance = m.Thickness / m.Conductivity
		case store.LayerResistance:
			lc.Resistance, _ = c.store.Resistance(layer)
		case store.LayerAirPattern:
			lc.Resistance = AirGapResistance
		default:
			c.log.Warn("layer not found", "construction", name, "layer", layer)
			res.Missing = append(res.Missing, layer)
		}

		total += lc.Resistance
		res.Layers = append(res.Layers, lc)
	}

	res.TotalResistance = total
	if !(total > 0) {
		return res, fmt.Errorf("%w: %s (R=%.4f)", domain.ErrNonPositiveResistance, name, total)
	}
	u := 1 / total
	if math.IsNaN(u) || math.IsInf(u, 0) {
		return res, fmt.Errorf("%w: %s (R=%g)", domain.ErrNonFiniteUValue, name, total)
	}
	res.UValue = u
	return res, nil
}

// Compute calculates the U-value of the named construction and stores it on
// the record. It returns nil when the construction is unknown or the layer
// stack yields no positive, finite result; the failure is logged.
func (c *Calculator) Compute(name string) *float64 {
	res, err := c.Calculate(name)
	if err != nil {
		c.log.Error("u-value calculation failed", "construction", name, "error", err)
		if con, ok := c.store.Construction(name); ok {
			con.UValue = nil
		}
		return nil
	}

	u := res.UValue
	con, _ := c.store.Construction(name)
	con.UValue = &u
	return &u
}

// ComputeAll computes every construction in name order.
func (c *Calculator) ComputeAll() map[string]*float64 {
	out := make(map[string]*float64)
	for _, name := range c.store.ConstructionNames() {
		out[name] = c.Compute(name)
	}
	return out
}
