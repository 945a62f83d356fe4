package domain

// Material is an opaque layer with mass, as declared by a Material object.
type Material struct {
	Name               string  `json:"name" yaml:"name"`
	Roughness          string  `json:"roughness,omitempty" yaml:"roughness,omitempty"`
	Thickness          float64 `json:"thickness" yaml:"thickness"`         // m
	Conductivity       float64 `json:"conductivity" yaml:"conductivity"`   // W/(m·K)
	Density            float64 `json:"density" yaml:"density"`             // kg/m³
	SpecificHeat       float64 `json:"specific_heat" yaml:"specific_heat"` // J/(kg·K)
	ThermalAbsorptance float64 `json:"thermal_absorptance" yaml:"thermal_absorptance"`
	SolarAbsorptance   float64 `json:"solar_absorptance" yaml:"solar_absorptance"`
	VisibleAbsorptance float64 `json:"visible_absorptance" yaml:"visible_absorptance"`
}

// Default absorptances applied when a Material omits the optional trailing fields.
const (
	DefaultThermalAbsorptance = 0.9
	DefaultSolarAbsorptance   = 0.7
	DefaultVisibleAbsorptance = 0.7
)

// Construction is an ordered layer stack, outside to inside.
type Construction struct {
	Name     string           `json:"name" yaml:"name"`
	Layers   []string         `json:"layers" yaml:"layers"`
	UValue   *float64         `json:"u_value,omitempty" yaml:"u_value,omitempty"`
	Category EnvelopeCategory `json:"category,omitempty" yaml:"category,omitempty"`
}

// Library is the full set of thermal records loaded from IDF text.
type Library struct {
	Materials     map[string]*Material     `json:"materials"`
	Resistances   map[string]float64       `json:"resistances"` // Material:NoMass and Material:AirGap, m²K/W
	GlazingU      map[string]float64       `json:"glazing_u"`   // WindowMaterial:SimpleGlazingSystem, W/m²K
	Constructions map[string]*Construction `json:"constructions"`
}

func NewLibrary() *Library {
	return &Library{
		Materials:     make(map[string]*Material),
		Resistances:   make(map[string]float64),
		GlazingU:      make(map[string]float64),
		Constructions: make(map[string]*Construction),
	}
}
