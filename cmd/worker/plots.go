package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/eplus-at/eplus-resources/internal/platform/cli"
	plots "github.com/eplus-at/eplus-resources/internal/result_plots"
)

func runPlots(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("plots", flag.ContinueOnError)
	fs.SetOutput(out)

	csvPath := fs.String("csv", "output/eplusout.csv", "Path to eplusout.csv.")
	outDir := fs.String("out", "output/figures", "Output directory for charts and daily statistics.")
	zone := fs.String("zone", "", "Only plot this zone (default: every zone found).")
	vars := fs.String("vars", strings.Join(plots.DefaultVars, ","), "Comma separated variables to plot.")
	year := fs.Int("year", plots.DefaultYear, "Year for timestamps without one.")
	width := fs.Int("width", plots.DefaultWidth, "Chart width in px.")
	height := fs.Int("height", plots.DefaultHeight, "Chart height in px.")
	workers := fs.Int("workers", 4, "Charts rendered in parallel.")
	logLevel := fs.String("log-level", "info", "Logging level.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return cli.Usage("%v", err)
	}
	if *width <= 0 || *height <= 0 {
		return cli.Usage("--width and --height must be positive")
	}

	log, err := newLogger(*logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	report, err := plots.NewPlotter(log).Run(ctx, plots.Options{
		CSVPath: *csvPath,
		OutDir:  *outDir,
		Zone:    *zone,
		Vars:    cli.SplitList(*vars),
		Year:    *year,
		Width:   *width,
		Height:  *height,
		Workers: *workers,
	})
	if err != nil {
		return err
	}

	for _, s := range report.Skipped {
		fmt.Fprintf(out, "skipped: %s\n", s)
	}
	for _, c := range report.Charts {
		fmt.Fprintf(out, "chart: %s\n", c)
	}
	for _, d := range report.Daily {
		fmt.Fprintf(out, "daily: %s\n", d)
	}
	fmt.Fprintf(out, "Done: %d charts for %d zones in %s\n", len(report.Charts), len(report.Zones), *outDir)
	return nil
}
