package plots

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNoTimeColumn = errors.New("no Date/Time column")
	ErrBadTimestamp = errors.New("unparseable timestamps")
)

// TimeColumns are the header names EnergyPlus uses for the timestamp.
var TimeColumns = []string{"Date/Time", "Date Time", "Date_Time"}

// Results is a parsed eplusout.csv.
type Results struct {
	Header     []string
	TimeColumn string
	Times      []time.Time
	rows       [][]string
	index      map[string]int
}

// ReadResults loads an EnergyPlus CSV. Dates without a year get year.
func ReadResults(path string, year int) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return ParseResults(data, year)
}

func ParseResults(data []byte, year int) (*Results, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse results: empty file")
	}

	res := &Results{Header: records[0], rows: records[1:], index: make(map[string]int)}
	for i, h := range res.Header {
		h = strings.TrimSpace(h)
		res.Header[i] = h
		res.index[h] = i
	}

	for _, c := range TimeColumns {
		if _, ok := res.index[c]; ok {
			res.TimeColumn = c
			break
		}
	}
	if res.TimeColumn == "" {
		return nil, ErrNoTimeColumn
	}

	raw := make([]string, len(res.rows))
	col := res.index[res.TimeColumn]
	for i, row := range res.rows {
		if col < len(row) {
			raw[i] = row[col]
		}
	}
	if res.Times, err = ParseTimestamps(raw, year); err != nil {
		return nil, err
	}
	return res, nil
}

// Column returns the values of one column. Cells that are not numbers
// come back as NaN.
func (r *Results) Column(name string) ([]float64, bool) {
	col, ok := r.index[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(r.rows))
	for i, row := range r.rows {
		out[i] = math.NaN()
		if col >= len(row) {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); err == nil {
			out[i] = v
		}
	}
	return out, true
}

var (
	withYear    = []string{"01/02/2006 15:04:05", "2006-01-02 15:04:05", "01/02/2006 15:04", "2006-01-02 15:04"}
	withoutYear = []string{"01/02 15:04:05 2006", "01/02 15:04 2006"}
)

// ParseTimestamps parses EnergyPlus Date/Time cells. The DST marker "*" is
// dropped, runs of spaces collapse, a missing year is filled in and 24:00
// becomes 00:00 of the next day.
func ParseTimestamps(raw []string, year int) ([]time.Time, error) {
	out := make([]time.Time, len(raw))
	var bad []string
	for i, s := range raw {
		t, ok := parseTimestamp(s, year)
		if !ok {
			if len(bad) < 5 {
				bad = append(bad, strings.TrimSpace(s))
			}
			continue
		}
		out[i] = t
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%w, e.g. %q", ErrBadTimestamp, bad)
	}
	return out, nil
}

func parseTimestamp(s string, year int) (time.Time, bool) {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "*", "")), " ")
	if s == "" {
		return time.Time{}, false
	}
	if t, ok := tryLayouts(s, year); ok {
		return t, true
	}
	if strings.Contains(s, "24:") {
		if t, ok := tryLayouts(strings.Replace(s, "24:", "00:", 1), year); ok {
			return t.AddDate(0, 0, 1), true
		}
	}
	return time.Time{}, false
}

func tryLayouts(s string, year int) (time.Time, bool) {
	for _, l := range withYear {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	suffixed := s + " " + strconv.Itoa(year)
	for _, l := range withoutYear {
		if t, err := time.Parse(l, suffixed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
