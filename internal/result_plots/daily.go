package plots

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// DayStats holds the daily aggregate of a series.
type DayStats struct {
	Date time.Time
	Mean float64
	Min  float64
	Max  float64
}

// DailyStats aggregates values by calendar day, skipping NaN. Days without
// any value are omitted.
func DailyStats(times []time.Time, values []float64) []DayStats {
	var out []DayStats
	var cur DayStats
	var sum float64
	var n int
	flush := func() {
		if n > 0 {
			cur.Mean = sum / float64(n)
			out = append(out, cur)
		}
	}

	for i, t := range times {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		if i == 0 || !d.Equal(cur.Date) {
			flush()
			cur = DayStats{Date: d, Min: math.Inf(1), Max: math.Inf(-1)}
			sum, n = 0, 0
		}
		v := values[i]
		if math.IsNaN(v) {
			continue
		}
		cur.Min = math.Min(cur.Min, v)
		cur.Max = math.Max(cur.Max, v)
		sum += v
		n++
	}
	flush()
	return out
}

// WriteDaily writes stats as date,mean,min,max.
func WriteDaily(path string, stats []DayStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write daily stats: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"date", "mean", "min", "max"})
	for _, s := range stats {
		_ = w.Write([]string{
			s.Date.Format("2006-01-02"),
			strconv.FormatFloat(s.Mean, 'f', 3, 64),
			strconv.FormatFloat(s.Min, 'f', 3, 64),
			strconv.FormatFloat(s.Max, 'f', 3, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write daily stats: %w", err)
	}
	return f.Close()
}
