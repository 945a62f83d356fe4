package zonebuilder

import "strings"

// Wall names used for window placement.
const (
	WallSouth = "sued"
	WallNorth = "nord"
	WallWest  = "west"
	WallEast  = "ost"
)

// Room types with built-in defaults.
const (
	RoomWohnzimmer   = "wohnzimmer"
	RoomKueche       = "kueche"
	RoomSchlafzimmer = "schlafzimmer"
	RoomBadezimmer   = "badezimmer"
	RoomBuero        = "buero"
	RoomKeller       = "keller"
)

// DefaultHeatingSchedule is used for room types without their own.
const DefaultHeatingSchedule = "AT_Heizung_Zeitplan"

type Dimensions struct {
	Width  float64 `yaml:"width" json:"width"`
	Depth  float64 `yaml:"depth" json:"depth"`
	Height float64 `yaml:"height" json:"height"`
}

type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Window is centered horizontally on the named wall.
type Window struct {
	Wall       string  `yaml:"wall" json:"wall"`
	Width      float64 `yaml:"width" json:"width"`
	Height     float64 `yaml:"height" json:"height"`
	SillHeight float64 `yaml:"sill_height" json:"sill_height"`
}

// RoomDefaults are the values a zone of a room type starts from.
type RoomDefaults struct {
	Dimensions      Dimensions
	PeopleCount     float64
	LightingPower   float64
	EquipmentPower  float64
	HeatingSchedule string
	Windows         []Window
}

var fallbackRoom = RoomDefaults{
	Dimensions:      Dimensions{4.0, 4.0, 2.7},
	PeopleCount:     1.0,
	LightingPower:   100,
	EquipmentPower:  50,
	HeatingSchedule: DefaultHeatingSchedule,
}

var roomDefaults = map[string]RoomDefaults{
	RoomWohnzimmer: {
		Dimensions:      Dimensions{5.0, 6.0, 2.7},
		PeopleCount:     2.5,
		LightingPower:   300,
		EquipmentPower:  500,
		HeatingSchedule: DefaultHeatingSchedule,
		Windows:         []Window{{WallSouth, 4.0, 1.4, 0.8}},
	},
	RoomKueche: {
		Dimensions:      Dimensions{4.0, 3.0, 2.7},
		PeopleCount:     1.0,
		LightingPower:   180,
		EquipmentPower:  800,
		HeatingSchedule: DefaultHeatingSchedule,
		Windows:         []Window{{WallNorth, 2.4, 1.4, 0.8}},
	},
	RoomSchlafzimmer: {
		Dimensions:      Dimensions{4.0, 4.0, 2.7},
		PeopleCount:     2.0,
		LightingPower:   100,
		EquipmentPower:  50,
		HeatingSchedule: "AT_Heizung_Schlafbereich",
		Windows:         []Window{{WallSouth, 1.0, 1.4, 0.8}},
	},
	RoomBadezimmer: {
		Dimensions:      Dimensions{2.5, 3.0, 2.7},
		PeopleCount:     0.5,
		LightingPower:   120,
		EquipmentPower:  200,
		HeatingSchedule: "BAD_Heizung_Zeitplan",
		Windows:         []Window{{WallNorth, 1.1, 0.8, 1.2}},
	},
	RoomBuero: {
		Dimensions:      Dimensions{3.5, 4.0, 2.7},
		PeopleCount:     1.0,
		LightingPower:   200,
		EquipmentPower:  300,
		HeatingSchedule: DefaultHeatingSchedule,
		Windows:         []Window{{WallSouth, 1.5, 1.4, 0.8}},
	},
	RoomKeller: {
		Dimensions:      Dimensions{4.0, 6.0, 2.3},
		PeopleCount:     0.1,
		LightingPower:   80,
		EquipmentPower:  100,
		HeatingSchedule: "Keller_Heizung_Zeitplan",
		Windows:         []Window{{WallSouth, 0.8, 0.6, 2.0}},
	},
}

// DefaultsFor returns the defaults of a room type. Unknown types get a
// plain 4 x 4 m room without windows.
func DefaultsFor(roomType string) (RoomDefaults, bool) {
	d, ok := roomDefaults[strings.ToLower(roomType)]
	if !ok {
		return fallbackRoom, false
	}
	return d, true
}

// RoomTypes lists the known room types.
func RoomTypes() []string {
	return []string{RoomWohnzimmer, RoomKueche, RoomSchlafzimmer, RoomBadezimmer, RoomBuero, RoomKeller}
}

// Constructions names the construction used for each surface kind.
type Constructions struct {
	ExteriorWall string `yaml:"exterior_wall,omitempty" json:"exterior_wall,omitempty"`
	InteriorWall string `yaml:"interior_wall,omitempty" json:"interior_wall,omitempty"`
	Floor        string `yaml:"floor,omitempty" json:"floor,omitempty"`
	Ceiling      string `yaml:"ceiling,omitempty" json:"ceiling,omitempty"`
	Roof         string `yaml:"roof,omitempty" json:"roof,omitempty"`
	Window       string `yaml:"window,omitempty" json:"window,omitempty"`
	Door         string `yaml:"door,omitempty" json:"door,omitempty"`
}

// StandardConstructions are the Austrian reference constructions.
var StandardConstructions = Constructions{
	ExteriorWall: "AT_Außenwand_WDVS_Standard",
	InteriorWall: "AT_Innenwand_Ziegel_14cm",
	Floor:        "AT_Zwischendecke_Standard",
	Ceiling:      "AT_Zwischendecke_Standard",
	Roof:         "AT_Steildach_Standard",
	Window:       "AT_Fenster_3fach_Standard",
	Door:         "AT_Innentür_Standard",
}

// merge fills the empty fields of c from base.
func (c Constructions) merge(base Constructions) Constructions {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Constructions{
		ExteriorWall: pick(c.ExteriorWall, base.ExteriorWall),
		InteriorWall: pick(c.InteriorWall, base.InteriorWall),
		Floor:        pick(c.Floor, base.Floor),
		Ceiling:      pick(c.Ceiling, base.Ceiling),
		Roof:         pick(c.Roof, base.Roof),
		Window:       pick(c.Window, base.Window),
		Door:         pick(c.Door, base.Door),
	}
}
