package zonebuilder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eplus-at/eplus-resources/internal/resource_management/idf"
)

var (
	ErrUnknownWall     = errors.New("unknown wall")
	ErrWindowTooLarge  = errors.New("window does not fit its wall")
	ErrInvalidZoneName = errors.New("invalid zone name")
)

// ZonePrefix starts every generated zone name.
const ZonePrefix = "AT_Zone_"

// ZoneConfig describes one rectangular zone. Zero values are filled from
// the room type's defaults.
type ZoneConfig struct {
	Name           string        `yaml:"name" json:"name"`
	RoomType       string        `yaml:"room_type" json:"room_type"`
	Dimensions     *Dimensions   `yaml:"dimensions,omitempty" json:"dimensions,omitempty"`
	Position       Position      `yaml:"position" json:"position"`
	Orientation    float64       `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	Constructions  Constructions `yaml:"constructions,omitempty" json:"constructions,omitempty"`
	Windows        []Window      `yaml:"windows,omitempty" json:"windows,omitempty"`
	PeopleCount    float64       `yaml:"people_count,omitempty" json:"people_count,omitempty"`
	LightingPower  float64       `yaml:"lighting_power,omitempty" json:"lighting_power,omitempty"`
	EquipmentPower float64       `yaml:"equipment_power,omitempty" json:"equipment_power,omitempty"`
}

// zone is a ZoneConfig with every default applied.
type zone struct {
	ZoneConfig
	dims            Dimensions
	heatingSchedule string
}

func (c ZoneConfig) resolve(base Constructions) (zone, error) {
	if strings.TrimSpace(c.Name) == "" || strings.ContainsAny(c.Name, ",;!") {
		return zone{}, fmt.Errorf("%w: %q", ErrInvalidZoneName, c.Name)
	}
	c.RoomType = strings.ToLower(c.RoomType)
	d, _ := DefaultsFor(c.RoomType)

	z := zone{ZoneConfig: c, dims: d.Dimensions, heatingSchedule: d.HeatingSchedule}
	if c.Dimensions != nil {
		z.dims = *c.Dimensions
	}
	if z.PeopleCount == 0 {
		z.PeopleCount = d.PeopleCount
	}
	if z.LightingPower == 0 {
		z.LightingPower = d.LightingPower
	}
	if z.EquipmentPower == 0 {
		z.EquipmentPower = d.EquipmentPower
	}
	if z.Windows == nil {
		z.Windows = d.Windows
	}
	z.Constructions = c.Constructions.merge(base)
	return z, nil
}

func (z zone) id() string {
	return ZonePrefix + z.Name
}

// WriteZone writes the IDF objects of one zone: the zone itself, floor,
// ceiling, four exterior walls, windows, thermostat, internal gains and
// the room type's schedules.
func WriteZone(w io.Writer, cfg ZoneConfig, base Constructions) error {
	z, err := cfg.resolve(base)
	if err != nil {
		return err
	}
	windows, err := z.windows()
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	id := z.id()
	x, y, h := z.Position.X, z.Position.Y, z.Position.Z
	width, depth, height := z.dims.Width, z.dims.Depth, z.dims.Height

	ew.comment("========================================================================")
	ew.comment("ZONE: %s (%s)", strings.ToUpper(z.Name), z.RoomType)
	ew.comment("%sm x %sm x %sm", idf.Num(width), idf.Num(depth), idf.Num(height))
	ew.comment("========================================================================")
	ew.blank()

	ew.object("Zone",
		idf.F(id, "Name"),
		idf.F(idf.Num(z.Orientation), "Direction of Relative North {deg}"),
		idf.F(idf.Num(x), "X Origin {m}"),
		idf.F(idf.Num(y), "Y Origin {m}"),
		idf.F(idf.Num(h), "Z Origin {m}"),
		idf.F("1", "Type"),
		idf.F("1", "Multiplier"),
		idf.F("autocalculate", "Ceiling Height {m}"),
		idf.F("autocalculate", "Volume {m3}"),
	)

	ew.object("BuildingSurface:Detailed", horizontal(id+"_Boden", "Floor", z.Constructions.Floor, id, "1.0", [4][3]float64{
		{x, y, h},
		{x, y + depth, h},
		{x + width, y + depth, h},
		{x + width, y, h},
	})...)
	ew.object("BuildingSurface:Detailed", horizontal(id+"_Decke", "Ceiling", z.Constructions.Ceiling, id, "0", [4][3]float64{
		{x, y, h + height},
		{x + width, y, h + height},
		{x + width, y + depth, h + height},
		{x, y + depth, h + height},
	})...)

	top := h + height
	walls := []struct {
		suffix string
		verts  [4][3]float64
	}{
		{"Sued", [4][3]float64{{x, y, top}, {x, y, h}, {x + width, y, h}, {x + width, y, top}}},
		{"Nord", [4][3]float64{{x + width, y + depth, top}, {x + width, y + depth, h}, {x, y + depth, h}, {x, y + depth, top}}},
		{"West", [4][3]float64{{x, y, top}, {x, y + depth, top}, {x, y + depth, h}, {x, y, h}}},
		{"Ost", [4][3]float64{{x + width, y, top}, {x + width, y, h}, {x + width, y + depth, h}, {x + width, y + depth, top}}},
	}
	for _, wall := range walls {
		ew.object("BuildingSurface:Detailed", exteriorWall(id+"_Wand_"+wall.suffix, z.Constructions.ExteriorWall, id, wall.verts)...)
	}

	for _, win := range windows {
		ew.object("FenestrationSurface:Detailed", win...)
	}

	ew.object("ZoneControl:Thermostat",
		idf.F(id+"_Thermostat", "Name"),
		idf.F(id, "Zone or ZoneList Name"),
		idf.F("AT_Dual_Zone_Control", "Control Type Schedule Name"),
		idf.F("ThermostatSetpoint:DualSetpoint", "Control Object Type 1"),
		idf.F(id+"_Setpoint", "Control Name 1"),
	)
	ew.object("ThermostatSetpoint:DualSetpoint",
		idf.F(id+"_Setpoint", "Name"),
		idf.F(z.heatingSchedule, "Heating Setpoint Temperature Schedule Name"),
		idf.F("AT_Kühlung_Zeitplan", "Cooling Setpoint Temperature Schedule Name"),
	)

	ew.object("People",
		idf.F(id+"_People", "Name"),
		idf.F(id, "Zone or ZoneList Name"),
		idf.F(z.Name+"_Anwesenheit", "Number of People Schedule Name"),
		idf.F("people", "Number of People Calculation Method"),
		idf.F(idf.Num(z.PeopleCount), "Number of People"),
		idf.F("", "People per Zone Floor Area {person/m2}"),
		idf.F("", "Zone Floor Area per Person {m2/person}"),
		idf.F("0.3", "Fraction Radiant"),
		idf.F("", "Sensible Heat Fraction"),
		idf.F(z.Name+"_Aktivitaet", "Activity Level Schedule Name"),
	)
	ew.object("Lights",
		idf.F(id+"_Lights", "Name"),
		idf.F(id, "Zone or ZoneList Name"),
		idf.F(z.Name+"_Beleuchtung", "Schedule Name"),
		idf.F("LightingLevel", "Design Level Calculation Method"),
		idf.F(idf.Num(z.LightingPower), "Lighting Level {W}"),
		idf.F("", "Watts per Zone Floor Area {W/m2}"),
		idf.F("", "Watts per Person {W/person}"),
		idf.F("0", "Return Air Fraction"),
		idf.F("0.4", "Fraction Radiant"),
		idf.F("0.2", "Fraction Visible"),
		idf.F("1.0", "Fraction Replaceable"),
		idf.F("General", "End-Use Subcategory"),
		idf.F("No", "Return Air Fraction Calculated from Plenum Temperature"),
	)
	ew.object("ElectricEquipment",
		idf.F(id+"_Equipment", "Name"),
		idf.F(id, "Zone or ZoneList Name"),
		idf.F(z.Name+"_Geraete", "Schedule Name"),
		idf.F("EquipmentLevel", "Design Level Calculation Method"),
		idf.F(idf.Num(z.EquipmentPower), "Design Level {W}"),
		idf.F("", "Watts per Zone Floor Area {W/m2}"),
		idf.F("", "Watts per Person {W/person}"),
		idf.F("0", "Fraction Latent"),
		idf.F("0.3", "Fraction Radiant"),
		idf.F("0", "Fraction Lost"),
		idf.F("General", "End-Use Subcategory"),
	)

	for _, s := range roomSchedules(z.Name, z.RoomType) {
		fields := []idf.Field{idf.F(s.Name, "Name"), idf.F(s.Limits, "Schedule Type Limits Name")}
		for i, f := range s.Fields {
			fields = append(fields, idf.F(f, fmt.Sprintf("Field %d", i+1)))
		}
		ew.object("Schedule:Compact", fields...)
	}

	return ew.err
}

func horizontal(name, kind, construction, zoneID, viewFactor string, verts [4][3]float64) []idf.Field {
	fields := []idf.Field{
		idf.F(name, "Name"),
		idf.F(kind, "Surface Type"),
		idf.F(construction, "Construction Name"),
		idf.F(zoneID, "Zone Name"),
		idf.F("OtherSideCoefficients", "Outside Boundary Condition"),
		idf.F("", "Outside Boundary Condition Object"),
		idf.F("NoSun", "Sun Exposure"),
		idf.F("NoWind", "Wind Exposure"),
		idf.F(viewFactor, "View Factor to Ground"),
	}
	return append(fields, vertices(verts)...)
}

func exteriorWall(name, construction, zoneID string, verts [4][3]float64) []idf.Field {
	fields := []idf.Field{
		idf.F(name, "Name"),
		idf.F("Wall", "Surface Type"),
		idf.F(construction, "Construction Name"),
		idf.F(zoneID, "Zone Name"),
		idf.F("Outdoors", "Outside Boundary Condition"),
		idf.F("", "Outside Boundary Condition Object"),
		idf.F("SunExposed", "Sun Exposure"),
		idf.F("WindExposed", "Wind Exposure"),
		idf.F("0.5", "View Factor to Ground"),
	}
	return append(fields, vertices(verts)...)
}

func vertices(verts [4][3]float64) []idf.Field {
	fields := []idf.Field{idf.F("4", "Number of Vertices")}
	for i, v := range verts {
		fields = append(fields, idf.F(idf.Vertex(v[0], v[1], v[2]), fmt.Sprintf("X,Y,Z ==> Vertex %d {m}", i+1)))
	}
	return fields
}

// windows lays out each window centered on its wall, sill height above the
// zone floor.
func (z zone) windows() ([][]idf.Field, error) {
	x, y, h := z.Position.X, z.Position.Y, z.Position.Z
	width, depth := z.dims.Width, z.dims.Depth

	var out [][]idf.Field
	for i, w := range z.Windows {
		wall := strings.ToLower(w.Wall)
		bottom := h + w.SillHeight
		top := bottom + w.Height
		if w.Width <= 0 || w.Height <= 0 || w.SillHeight < 0 || w.SillHeight+w.Height > z.dims.Height {
			return nil, fmt.Errorf("%w: %s window %d", ErrWindowTooLarge, wall, i+1)
		}

		var verts [4][3]float64
		var surface string
		switch wall {
		case WallSouth, WallNorth:
			if w.Width > width {
				return nil, fmt.Errorf("%w: %s window %d", ErrWindowTooLarge, wall, i+1)
			}
			start := x + (width-w.Width)/2
			end := start + w.Width
			if wall == WallSouth {
				verts = [4][3]float64{{start, y, top}, {start, y, bottom}, {end, y, bottom}, {end, y, top}}
				surface = "Sued"
			} else {
				wy := y + depth
				verts = [4][3]float64{{end, wy, top}, {end, wy, bottom}, {start, wy, bottom}, {start, wy, top}}
				surface = "Nord"
			}
		case WallWest, WallEast:
			if w.Width > depth {
				return nil, fmt.Errorf("%w: %s window %d", ErrWindowTooLarge, wall, i+1)
			}
			start := y + (depth-w.Width)/2
			end := start + w.Width
			if wall == WallWest {
				verts = [4][3]float64{{x, start, top}, {x, end, top}, {x, end, bottom}, {x, start, bottom}}
				surface = "West"
			} else {
				wx := x + width
				verts = [4][3]float64{{wx, end, top}, {wx, start, top}, {wx, start, bottom}, {wx, end, bottom}}
				surface = "Ost"
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownWall, w.Wall)
		}

		fields := []idf.Field{
			idf.F(fmt.Sprintf("%s_Fenster_%s_%d", z.id(), surface, i+1), "Name"),
			idf.F("Window", "Surface Type"),
			idf.F(z.Constructions.Window, "Construction Name"),
			idf.F(z.id()+"_Wand_"+surface, "Building Surface Name"),
			idf.F("", "Outside Boundary Condition Object"),
			idf.F("0.5", "View Factor to Ground"),
			idf.F("", "Frame and Divider Name"),
			idf.F("1", "Multiplier"),
		}
		out = append(out, append(fields, vertices(verts)...))
	}
	return out, nil
}

// errWriter keeps the first write error so the generator can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) object(typ string, fields ...idf.Field) {
	if e.err != nil {
		return
	}
	if e.err = idf.WriteObject(e.w, typ, fields...); e.err == nil {
		e.blank()
	}
}

func (e *errWriter) comment(format string, args ...interface{}) {
	if e.err == nil {
		e.err = idf.WriteComment(e.w, format, args...)
	}
}

func (e *errWriter) blank() {
	if e.err == nil {
		_, e.err = io.WriteString(e.w, "\n")
	}
}
