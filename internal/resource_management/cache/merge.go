package cache

import (
	"sort"

	"github.com/eplus-at/eplus-resources/internal/resource_management/report"
)

// UpdatedColumn carries the time a row was last written by a refresh.
const UpdatedColumn = "last_updated"

// Merge joins prior and current on the Name column. For rows present in
// both, a non-empty current cell wins and an empty one falls back to the
// prior value. Prior-only rows are kept. The result uses the current
// column set plus UpdatedColumn; prior columns outside it are dropped.
// Every row of current is stamped, prior-only rows keep their stamp.
func Merge(prior, current report.Table, stamp string) report.Table {
	columns := append([]string(nil), current.Columns...)
	if !contains(columns, UpdatedColumn) {
		columns = append(columns, UpdatedColumn)
	}

	merged := make(map[string]report.Row)
	for key, old := range prior.Index() {
		row := make(report.Row, len(columns))
		for _, c := range columns {
			if v := old[c]; v != "" {
				row[c] = v
			}
		}
		merged[key] = row
	}

	for key, cur := range current.Index() {
		row, ok := merged[key]
		if !ok {
			row = make(report.Row, len(columns))
			merged[key] = row
		}
		for _, c := range current.Columns {
			if v := cur[c]; v != "" {
				row[c] = v
			}
		}
		row[UpdatedColumn] = stamp
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := report.Table{Columns: columns, Rows: make([]report.Row, 0, len(keys))}
	for _, k := range keys {
		out.Rows = append(out.Rows, merged[k])
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
