package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
	"github.com/eplus-at/eplus-resources/internal/resource_management/uvalue"
)

// Construction table columns.
const (
	ColLayerCount      = "Layer Count"
	ColLayers          = "Layers"
	ColUValue          = "U-Value [W/m2K]"
	ColOIBCompliant    = "OIB Compliant"
	ColPassivhausReady = "Passivhaus Ready"
)

var ConstructionColumns = []string{
	KeyColumn, ColCategory, ColLayerCount, ColLayers, ColUValue, ColOIBCompliant, ColPassivhausReady,
}

// Compliance flag values.
const (
	FlagYes     = "yes"
	FlagNo      = "no"
	FlagNA      = "n/a"
	FlagUnknown = "unknown"
	// UValueError marks a construction whose U-value could not be computed.
	UValueError = "error"
)

// LayerSeparator joins layer names in the Layers column.
const LayerSeparator = " | "

// ComplianceFlags reports whether u meets the legal and the low-energy limit
// of category c.
func ComplianceFlags(c domain.EnvelopeCategory, u *float64) (legal, lowEnergy string) {
	if u == nil {
		return FlagUnknown, FlagUnknown
	}
	limits, ok := domain.LimitsFor(c)
	if !ok {
		return FlagNA, FlagNA
	}
	return flag(*u <= limits.Legal), flag(*u <= limits.LowEnergy)
}

func flag(ok bool) string {
	if ok {
		return FlagYes
	}
	return FlagNo
}

type constructionEntry struct {
	row Row
	u   *decimal.Decimal
}

// ConstructionsTable computes every construction and lists it with its
// category, layers, rounded U-value and compliance flags. Rows are sorted
// by category, then U-value with failed computations last.
func ConstructionsTable(s *store.Store, calc *uvalue.Calculator) Table {
	entries := make([]constructionEntry, 0, len(s.ConstructionNames()))
	for _, name := range s.ConstructionNames() {
		con, _ := s.Construction(name)
		category := domain.Categorize(name)
		u := calc.Compute(name)
		if u != nil && !finite(*u) {
			u = nil
		}
		legal, lowEnergy := ComplianceFlags(category, u)

		e := constructionEntry{row: Row{
			KeyColumn:          name,
			ColCategory:        string(category),
			ColLayerCount:      strconv.Itoa(len(con.Layers)),
			ColLayers:          strings.Join(con.Layers, LayerSeparator),
			ColUValue:          UValueError,
			ColOIBCompliant:    legal,
			ColPassivhausReady: lowEnergy,
		}}
		if u != nil {
			d := decimal.NewFromFloat(*u).Round(3)
			e.u = &d
			e.row[ColUValue] = d.String()
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.row[ColCategory] != b.row[ColCategory] {
			return a.row[ColCategory] < b.row[ColCategory]
		}
		switch {
		case a.u == nil && b.u == nil:
			return false
		case a.u == nil:
			return false
		case b.u == nil:
			return true
		}
		return a.u.LessThan(*b.u)
	})

	t := Table{Columns: ConstructionColumns, Rows: make([]Row, 0, len(entries))}
	for _, e := range entries {
		t.Rows = append(t.Rows, e.row)
	}
	return t
}
