package plots

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
)

const DefaultYear = 2013

// DefaultVars are plotted when no variables are requested.
var DefaultVars = []string{"Zone Air Temperature", "Zone Air Relative Humidity"}

var ErrNoSeries = errors.New("no <key>:<variable> columns in results")

type Options struct {
	CSVPath string
	OutDir  string
	// Zone restricts output to one key; empty means all.
	Zone    string
	Vars    []string
	Year    int
	Width   int
	Height  int
	Workers int
}

// Report lists what a run produced and what it could not find.
type Report struct {
	Zones   []string `json:"zones"`
	Charts  []string `json:"charts"`
	Daily   []string `json:"daily"`
	Skipped []string `json:"skipped,omitempty"`
}

type job struct {
	zone     string
	variable string
	column   string
}

type Plotter struct {
	log *logger.Logger
}

func NewPlotter(log *logger.Logger) *Plotter {
	return &Plotter{log: log.With("component", "plots")}
}

// Run reads the results file and writes one PNG per zone and variable, plus
// a daily mean/min/max CSV next to the chart of every air temperature series.
func (p *Plotter) Run(ctx context.Context, opts Options) (*Report, error) {
	opts = withDefaults(opts)

	res, err := ReadResults(opts.CSVPath, opts.Year)
	if err != nil {
		return nil, err
	}
	series := GroupColumns(res.Header)
	if len(series) == 0 {
		return nil, ErrNoSeries
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	report := &Report{}
	zones := series.Zones()
	if opts.Zone != "" {
		z, ok := series.FindZone(opts.Zone)
		if !ok {
			report.Skipped = append(report.Skipped, fmt.Sprintf("zone %q not found", opts.Zone))
			p.log.Warn("zone not found", "zone", opts.Zone, "available", zones)
			return report, nil
		}
		zones = []string{z}
	}
	report.Zones = zones

	// Requested names may resolve to the same series; each one is plotted once.
	var jobs []job
	seen := make(map[job]bool)
	for _, z := range zones {
		for _, want := range opts.Vars {
			v, ok := FindVariable(series[z], want)
			if !ok {
				report.Skipped = append(report.Skipped, fmt.Sprintf("%s: %s not found", z, want))
				continue
			}
			j := job{zone: z, variable: v, column: PickColumn(series[z][v])}
			if seen[j] {
				continue
			}
			seen[j] = true
			jobs = append(jobs, j)
		}
	}

	charts := make([]string, len(jobs))
	daily := make([]string, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chart, day, err := p.plot(res, j, opts)
			if err != nil {
				return err
			}
			charts[i], daily[i] = chart, day
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range jobs {
		report.Charts = append(report.Charts, charts[i])
		if daily[i] != "" {
			report.Daily = append(report.Daily, daily[i])
		}
	}
	p.log.Info("plots written", "zones", len(zones), "charts", len(report.Charts), "daily", len(report.Daily))
	return report, nil
}

func (p *Plotter) plot(res *Results, j job, opts Options) (string, string, error) {
	values, _ := res.Column(j.column)
	base := SafeName(j.zone) + "__" + SafeName(j.variable)

	chart := Chart{
		Title:  j.zone + " - " + j.variable,
		YLabel: UnitLabel(j.column, j.variable),
		Times:  res.Times,
		Values: values,
		Width:  opts.Width,
		Height: opts.Height,
	}
	chartPath := filepath.Join(opts.OutDir, base+".png")
	if err := chart.Save(chartPath); err != nil {
		return "", "", fmt.Errorf("%s: %w", j.column, err)
	}

	if !IsAirTemperature(j.variable) {
		return chartPath, "", nil
	}
	dailyPath := filepath.Join(opts.OutDir, base+"_daily.csv")
	if err := WriteDaily(dailyPath, DailyStats(res.Times, values)); err != nil {
		return "", "", err
	}
	return chartPath, dailyPath, nil
}

func withDefaults(o Options) Options {
	if len(o.Vars) == 0 {
		o.Vars = DefaultVars
	}
	if o.Year == 0 {
		o.Year = DefaultYear
	}
	if o.OutDir == "" {
		o.OutDir = "plots"
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}
