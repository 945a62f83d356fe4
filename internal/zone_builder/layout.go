package zonebuilder

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/idf"
)

// SampleFile is the file the sample house is written to.
const SampleFile = "Salzburg_EFH_Complete.idf"

// Layout is a building as a list of zones. Constructions override the
// standard set for every zone; a zone's own overrides win.
type Layout struct {
	Constructions Constructions `yaml:"constructions,omitempty" json:"constructions,omitempty"`
	Zones         []ZoneConfig  `yaml:"zones" json:"zones"`
}

func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	if len(l.Zones) == 0 {
		return Layout{}, fmt.Errorf("parse layout: no zones")
	}
	return l, nil
}

func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(data)
}

// SampleLayout is a typical Austrian single-family house ground floor.
func SampleLayout() Layout {
	return Layout{Zones: []ZoneConfig{
		{Name: "Wohnzimmer", RoomType: RoomWohnzimmer, Position: Position{0, 0, 0}, Dimensions: &Dimensions{5.0, 6.0, 2.7}},
		{Name: "Kueche", RoomType: RoomKueche, Position: Position{0, 7, 0}, Dimensions: &Dimensions{4.0, 3.0, 2.7}},
		{Name: "Schlafzimmer", RoomType: RoomSchlafzimmer, Position: Position{6, 0, 0}, Dimensions: &Dimensions{4.0, 4.0, 2.7}},
		{Name: "Badezimmer", RoomType: RoomBadezimmer, Position: Position{4, 7, 0}, Dimensions: &Dimensions{2.5, 3.0, 2.7}},
	}}
}

// WriteBuilding writes every zone of l in order.
func WriteBuilding(w io.Writer, l Layout) error {
	base := l.Constructions.merge(StandardConstructions)

	if err := idf.WriteComment(w, "========================================================================"); err != nil {
		return err
	}
	if err := idf.WriteComment(w, "GENERATED BUILDING: %d zones", len(l.Zones)); err != nil {
		return err
	}
	if err := idf.WriteComment(w, "========================================================================\n"); err != nil {
		return err
	}
	for _, z := range l.Zones {
		if err := WriteZone(w, z, base); err != nil {
			return fmt.Errorf("zone %s: %w", z.Name, err)
		}
	}
	return nil
}

// Builder writes zone files below <project>/resources/zones.
type Builder struct {
	zonesDir string
	log      *logger.Logger
}

func NewBuilder(projectPath string, log *logger.Logger) *Builder {
	return &Builder{
		zonesDir: filepath.Join(projectPath, "resources", "zones"),
		log:      log.With("component", "zone_builder"),
	}
}

func (b *Builder) ZonesDir() string {
	return b.zonesDir
}

// SaveZone writes one zone to filename, or AT_Zone_<name>.idf when
// filename is empty.
func (b *Builder) SaveZone(cfg ZoneConfig, filename string) (string, error) {
	if filename == "" {
		filename = ZonePrefix + cfg.Name + ".idf"
	}
	var buf bytes.Buffer
	if err := WriteZone(&buf, cfg, StandardConstructions); err != nil {
		return "", err
	}
	return b.write(filename, buf.Bytes())
}

// SaveBuilding writes a whole layout to filename.
func (b *Builder) SaveBuilding(l Layout, filename string) (string, error) {
	var buf bytes.Buffer
	if err := WriteBuilding(&buf, l); err != nil {
		return "", err
	}
	return b.write(filename, buf.Bytes())
}

// CreateSample writes the sample house.
func (b *Builder) CreateSample() (string, error) {
	return b.SaveBuilding(SampleLayout(), SampleFile)
}

func (b *Builder) write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(b.zonesDir, 0o755); err != nil {
		return "", fmt.Errorf("create zones dir: %w", err)
	}
	path := filepath.Join(b.zonesDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write zone file: %w", err)
	}
	b.log.Info("zone file written", "path", path)
	return path, nil
}
