package plots

import (
	"regexp"
	"sort"
	"strings"
)

// Output columns look like "<Key>:<Variable> [Unit](Frequency)".
var columnRe = regexp.MustCompile(`^([^:]+):(.+?)(?:\s*\[.*?\])?(?:\(.+?\))?$`)

var unitRe = regexp.MustCompile(`\[(.*)\]`)

var unsafeRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Synonyms maps a canonical variable name to the names EnergyPlus versions
// have used for it.
var Synonyms = map[string][]string{
	"zone air temperature":       {"zone mean air temperature", "zone air temperature"},
	"zone operative temperature": {"zone operative temperature"},
	"zone relative humidity":     {"zone air relative humidity", "zone relative humidity"},
	"zone humidity ratio":        {"zone mean air humidity ratio", "zone air humidity ratio", "zone humidity ratio"},
}

// synonymOrder fixes the lookup order over Synonyms.
var synonymOrder = []string{"zone air temperature", "zone operative temperature", "zone relative humidity", "zone humidity ratio"}

// Normalize lowercases s and collapses whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ZoneSeries groups output columns by key (usually a zone) and variable.
type ZoneSeries map[string]map[string][]string

// GroupColumns sorts the output columns of header into ZoneSeries.
func GroupColumns(header []string) ZoneSeries {
	out := make(ZoneSeries)
	for _, col := range header {
		if !strings.Contains(col, ":") || strings.HasPrefix(col, "Date") {
			continue
		}
		m := columnRe.FindStringSubmatch(col)
		if m == nil {
			continue
		}
		key, variable := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if out[key] == nil {
			out[key] = make(map[string][]string)
		}
		out[key][variable] = append(out[key][variable], col)
	}
	return out
}

// Zones returns the keys sorted.
func (z ZoneSeries) Zones() []string {
	out := make([]string, 0, len(z))
	for k := range z {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FindZone matches name case-insensitively.
func (z ZoneSeries) FindZone(name string) (string, bool) {
	want := Normalize(name)
	for _, k := range z.Zones() {
		if Normalize(k) == want {
			return k, true
		}
	}
	return "", false
}

// FindVariable picks the variable of a zone that best matches wanted:
// an exact match, then a known synonym, then a substring.
func FindVariable(vars map[string][]string, wanted string) (string, bool) {
	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}
	sort.Strings(names)

	want := Normalize(wanted)
	for _, v := range names {
		if Normalize(v) == want {
			return v, true
		}
	}

	for _, canon := range synonymOrder {
		alts := Synonyms[canon]
		if want != canon && !contains(alts, want) {
			continue
		}
		for _, alt := range alts {
			for _, v := range names {
				if Normalize(v) == alt {
					return v, true
				}
			}
		}
	}

	for _, v := range names {
		if strings.Contains(Normalize(v), want) {
			return v, true
		}
	}
	return "", false
}

// IsAirTemperature reports whether variable is a zone air temperature.
func IsAirTemperature(variable string) bool {
	return contains(Synonyms["zone air temperature"], Normalize(variable))
}

// PickColumn chooses deterministically among columns reporting the same
// variable at different frequencies.
func PickColumn(columns []string) string {
	sorted := append([]string(nil), columns...)
	sort.Strings(sorted)
	return sorted[0]
}

// UnitLabel returns "[unit]" from a column header, or fallback when the
// header carries no unit.
func UnitLabel(column, fallback string) string {
	if m := unitRe.FindStringSubmatch(column); m != nil {
		return "[" + m[1] + "]"
	}
	return fallback
}

// SafeName makes s usable in a file name.
func SafeName(s string) string {
	return unsafeRe.ReplaceAllString(s, "_")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
