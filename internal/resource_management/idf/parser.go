package idf

import (
	"fmt"
	"math"
	"strconv"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
)

// Warning describes a record that was skipped.
type Warning struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s %q skipped: %s", w.Source, w.Type, w.Name, w.Reason)
}

// Result counts the records one parse added to the library.
type Result struct {
	Materials     int
	Resistances   int
	Glazings      int
	Constructions int
	Warnings      []Warning
}

func (r Result) Records() int {
	return r.Materials + r.Resistances + r.Glazings + r.Constructions
}

type Parser struct {
	log *logger.Logger
}

func NewParser(log *logger.Logger) *Parser {
	return &Parser{log: log.With("component", "idf_parser")}
}

// Parse reads the file at path and merges its records into lib.
func (p *Parser) Parse(lib *domain.Library, path string) (Result, error) {
	text, err := ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read idf %s: %w", path, err)
	}
	return p.ParseString(lib, path, text), nil
}

func (p *Parser) ParseBytes(lib *domain.Library, source string, data []byte) (Result, error) {
	text, err := Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("decode idf %s: %w", source, err)
	}
	return p.ParseString(lib, source, text), nil
}

// ParseString merges every supported record of text into lib. Later
// records overwrite earlier ones with the same name. Malformed records are
// skipped and reported as warnings; they never stop the parse.
func (p *Parser) ParseString(lib *domain.Library, source, text string) Result {
	var res Result
	for _, obj := range Split(text) {
		var reason string
		switch obj.Type {
		case TypeMaterial:
			if reason = addMaterial(lib, obj); reason == "" {
				res.Materials++
			}
		case TypeNoMass:
			if reason = addResistance(lib, obj, 3, 2); reason == "" {
				res.Resistances++
			}
		case TypeAirGap:
			if reason = addResistance(lib, obj, 2, 1); reason == "" {
				res.Resistances++
			}
		case TypeSimpleGlazing:
			if reason = addGlazing(lib, obj); reason == "" {
				res.Glazings++
			}
		case TypeConstruction:
			if reason = addConstruction(lib, obj); reason == "" {
				res.Constructions++
			}
		default:
			continue
		}

		if reason != "" {
			w := Warning{Source: source, Type: obj.Type, Name: obj.Name(), Reason: reason}
			res.Warnings = append(res.Warnings, w)
			p.log.Warn("skipping idf record", "source", source, "type", obj.Type, "name", obj.Name(), "reason", reason)
		}
	}
	return res
}

func addMaterial(lib *domain.Library, obj Object) string {
	f := obj.Fields
	if len(f) < 6 {
		return fmt.Sprintf("expected at least 6 fields, got %d", len(f))
	}

	m := &domain.Material{
		Name:               f[0],
		Roughness:          f[1],
		ThermalAbsorptance: domain.DefaultThermalAbsorptance,
		SolarAbsorptance:   domain.DefaultSolarAbsorptance,
		VisibleAbsorptance: domain.DefaultVisibleAbsorptance,
	}
	targets := []*float64{
		&m.Thickness, &m.Conductivity, &m.Density, &m.SpecificHeat,
		&m.ThermalAbsorptance, &m.SolarAbsorptance, &m.VisibleAbsorptance,
	}
	for i, dst := range targets {
		idx := i + 2
		if idx >= len(f) {
			break
		}
		v, err := parseNumber(f[idx])
		if err != nil {
			return fmt.Sprintf("field %d: %v", idx+1, err)
		}
		*dst = v
	}

	lib.Materials[m.Name] = m
	return ""
}

func addResistance(lib *domain.Library, obj Object, minFields, idx int) string {
	f := obj.Fields
	if len(f) < minFields {
		return fmt.Sprintf("expected at least %d fields, got %d", minFields, len(f))
	}
	v, err := parseNumber(f[idx])
	if err != nil {
		return fmt.Sprintf("field %d: %v", idx+1, err)
	}
	lib.Resistances[f[0]] = v
	return ""
}

func addGlazing(lib *domain.Library, obj Object) string {
	f := obj.Fields
	if len(f) < 2 {
		return fmt.Sprintf("expected at least 2 fields, got %d", len(f))
	}
	v, err := parseNumber(f[1])
	if err != nil {
		return fmt.Sprintf("field 2: %v", err)
	}
	lib.GlazingU[f[0]] = v
	return ""
}

func addConstruction(lib *domain.Library, obj Object) string {
	f := obj.Fields
	if len(f) < 2 {
		return fmt.Sprintf("expected at least 2 fields, got %d", len(f))
	}
	layers := make([]string, len(f)-1)
	copy(layers, f[1:])
	lib.Constructions[f[0]] = &domain.Construction{Name: f[0], Layers: layers}
	return ""
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}
