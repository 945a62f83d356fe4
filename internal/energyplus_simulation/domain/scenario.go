package domain

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultWeatherFile is used by scenarios that name no weather file.
const DefaultWeatherFile = "weather/AUT_SZ_Salzburg.epw"

// Scenario describes one variant of a base model for batch runs.
type Scenario struct {
	Name        string `yaml:"-" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	WeatherFile string `yaml:"weather_file,omitempty" json:"weather_file,omitempty"`
	// Constructions maps a construction in the base model to its replacement.
	Constructions map[string]string `yaml:"constructions,omitempty" json:"constructions,omitempty"`
}

func (s Scenario) Weather() string {
	if s.WeatherFile == "" {
		return DefaultWeatherFile
	}
	return s.WeatherFile
}

// ParseScenarios reads a YAML mapping of scenario name to scenario and
// returns the scenarios sorted by name.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var raw map[string]Scenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	out := make([]Scenario, 0, len(raw))
	for name, sc := range raw {
		sc.Name = name
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	return ParseScenarios(data)
}

// SalzburgScenarios are the reference variants for the Salzburg
// single-family house.
func SalzburgScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "Bestand_Sanierung",
			Description: "Renovation of an existing building to the current standard",
			WeatherFile: DefaultWeatherFile,
			Constructions: map[string]string{
				"AT_Außenwand_WDVS_Standard": "AT_Außenwand_Bestand_Saniert",
				"AT_Fenster_3fach_Standard":  "AT_Fenster_2fach_Bestand",
			},
		},
		{
			Name:        "Klimawandel_2050",
			Description: "Future scenario with climate change weather data",
			WeatherFile: "weather/AUT_SZ_Salzburg_2050.epw",
		},
		{
			Name:        "Passivhaus_Neubau",
			Description: "New build to Passivhaus standard",
			WeatherFile: DefaultWeatherFile,
			Constructions: map[string]string{
				"AT_Außenwand_WDVS_Standard": "AT_Außenwand_Passivhaus",
				"AT_Steildach_Standard":      "AT_Dach_Passivhaus",
				"AT_Fenster_3fach_Standard":  "AT_Fenster_Passivhaus",
			},
		},
	}
}
