package report

// Row maps column name to cell text. An absent or empty cell is null.
type Row map[string]string

// Table is an ordered set of rows under a fixed column list.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// KeyColumn identifies rows in every report table.
const KeyColumn = "Name"

// Index returns the rows keyed by their Name cell.
func (t Table) Index() map[string]Row {
	out := make(map[string]Row, len(t.Rows))
	for _, r := range t.Rows {
		out[r[KeyColumn]] = r
	}
	return out
}

// Records renders the table as header plus rows in column order, ready for
// csv or spreadsheet writers.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, r := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = r[c]
		}
		out = append(out, rec)
	}
	return out
}
