package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/eplus-at/eplus-resources/config"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/engine"
	simservice "github.com/eplus-at/eplus-resources/internal/energyplus_simulation/service"
	"github.com/eplus-at/eplus-resources/internal/platform/cli"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	resdomain "github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/service"
)

// builtinScenarios selects the bundled Salzburg scenarios for --batch.
const builtinScenarios = "salzburg"

type options struct {
	validate      bool
	exportExcel   string
	exportIssues  string
	createProject string
	buildingType  string
	runSimulation string
	weatherFile   string
	outputDir     string
	resources     string
	updateCache   bool
	cacheDir      string
	batch         string
	logLevel      string
}

func (o *options) hasAction() bool {
	return o.validate || o.exportExcel != "" || o.exportIssues != "" || o.createProject != "" ||
		o.runSimulation != "" || o.updateCache
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(cli.Code(err))
	}
}

func parseFlags(args []string, out io.Writer, cfg *config.Config) (*options, bool, error) {
	fs := flag.NewFlagSet("resources", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, `
resources - Austrian EnergyPlus resource library manager.

Usage:
  resources [options]

Options:
`)
		fs.PrintDefaults()
	}

	o := &options{}
	fs.BoolVar(&o.validate, "validate", false, "Validate all resources against OIB and Passivhaus limits.")
	fs.StringVar(&o.exportExcel, "export-excel", "", "Write materials, constructions and validation to an xlsx file.")
	fs.StringVar(&o.exportIssues, "export-issues", "", "Write the validation report as JSON or YAML (by extension).")
	fs.StringVar(&o.createProject, "create-project", "", "Create a new project scaffold with this name.")
	fs.StringVar(&o.buildingType, "building-type", service.BuildingTypeEFH, "Building type template for --create-project.")
	fs.StringVar(&o.runSimulation, "run-simulation", "", "Run EnergyPlus on this IDF file.")
	fs.StringVar(&o.weatherFile, "weather-file", cfg.EnergyPlus.WeatherFile, "Weather file (EPW) for --run-simulation.")
	fs.StringVar(&o.outputDir, "output-dir", cfg.EnergyPlus.OutputDir, "Output directory for simulations.")
	fs.StringVar(&o.resources, "resources", cfg.Resources.Path, "Path to the resource IDF library.")
	fs.BoolVar(&o.updateCache, "update-cache", false, "Persist the material and construction tables as CSV.")
	fs.StringVar(&o.cacheDir, "cache-dir", "", "Cache directory (default: CACHE_DIR).")
	fs.StringVar(&o.batch, "batch", "", "Scenario YAML for a batch run of --run-simulation, or '"+builtinScenarios+"'.")
	fs.StringVar(&o.logLevel, "log-level", cfg.App.LogLevel, "Logging level: debug, info, warn or error.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, cli.Usage("%v", err)
	}
	if fs.NArg() > 0 {
		return nil, false, cli.Usage("unexpected argument: %s", fs.Arg(0))
	}

	switch strings.ToLower(o.logLevel) {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, cli.Usage("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if o.batch != "" && o.runSimulation == "" {
		return nil, false, cli.Usage("--batch needs --run-simulation with the base IDF")
	}

	if !o.hasAction() {
		fs.Usage()
		return nil, true, nil
	}
	return o, false, nil
}

func run(ctx context.Context, out io.Writer, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return cli.Usage("%v", err)
	}

	opts, shouldExit, err := parseFlags(args, out, cfg)
	if err != nil || shouldExit {
		return err
	}

	log, err := logger.New(cfg.App.Environment, opts.logLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	mgr, err := service.Open(service.Options{
		ResourcesPath: opts.resources,
		CacheDir:      cfg.Resources.CacheDir,
		AutoCache:     cfg.Resources.AutoCache && !opts.updateCache,
		ProjectsDir:   cfg.Resources.Projects,
		TemplatesDir:  cfg.Resources.Templates,
	}, log)
	if err != nil {
		return err
	}

	if opts.validate {
		printIssues(out, mgr.Validate())
	}

	if opts.exportExcel != "" {
		if err := mgr.ExportExcel(opts.exportExcel); err != nil {
			return err
		}
		fmt.Fprintf(out, "Excel export finished: %s\n", opts.exportExcel)
	}

	if opts.exportIssues != "" {
		if err := mgr.ExportIssues(opts.exportIssues); err != nil {
			return err
		}
		fmt.Fprintf(out, "Issue report written: %s\n", opts.exportIssues)
	}

	if opts.updateCache {
		dir := opts.cacheDir
		if dir == "" {
			dir = cfg.Resources.CacheDir
		}
		if err := mgr.UpdateCache(dir); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cache updated (CSV) in: %s\n", dir)
	}

	if opts.createProject != "" {
		p, err := mgr.CreateProject(opts.createProject, opts.buildingType)
		if err != nil {
			return cli.Usage("%v", err)
		}
		fmt.Fprintf(out, "Project created: %s\n", p.Path)
	}

	if opts.runSimulation == "" {
		return nil
	}

	runner := engine.NewRunner(engine.Options{
		Binary:        cfg.EnergyPlus.Binary,
		Root:          cfg.EnergyPlus.Root,
		ExpandObjects: cfg.EnergyPlus.ExpandObjects,
		ReadVars:      cfg.EnergyPlus.ReadVars,
	}, log)

	if opts.batch != "" {
		return runBatch(ctx, out, runner, opts, log)
	}
	return runSingle(ctx, out, runner, opts)
}

func printIssues(out io.Writer, issues resdomain.Issues) {
	fmt.Fprintln(out, "\n=== VALIDATION REPORT ===")
	if issues.Total() == 0 {
		fmt.Fprintln(out, "\nNo issues found.")
		return
	}
	for _, c := range resdomain.IssueCategories {
		items := issues[c]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s:\n", strings.ToUpper(strings.ReplaceAll(string(c), "_", " ")))
		for _, item := range items {
			fmt.Fprintf(out, "  • %s\n", item)
		}
	}
}

func runSingle(ctx context.Context, out io.Writer, runner *engine.Runner, opts *options) error {
	res, err := runner.Run(ctx, engine.Request{
		IDFPath:     opts.runSimulation,
		WeatherFile: opts.weatherFile,
		OutputDir:   opts.outputDir,
	})
	if err != nil {
		return err
	}
	printResult(out, res)
	if !res.Success {
		return &cli.ExitError{Code: 1, Message: "Simulation failed"}
	}
	fmt.Fprintln(out, "Simulation finished successfully")
	return nil
}

func runBatch(ctx context.Context, out io.Writer, runner *engine.Runner, opts *options, log *logger.Logger) error {
	var scenarios []domain.Scenario
	if opts.batch == builtinScenarios {
		scenarios = domain.SalzburgScenarios()
	} else {
		var err error
		if scenarios, err = domain.LoadScenarios(opts.batch); err != nil {
			return cli.Usage("%v", err)
		}
	}

	results := simservice.NewBatch(runner, opts.outputDir, log).Run(ctx, opts.runSimulation, scenarios)

	failed := 0
	for _, r := range results {
		status := "ok"
		switch {
		case errors.Is(r.Err, domain.ErrNotSupported):
			status = "not supported"
			failed++
		case r.Err != nil:
			status = "failed"
			failed++
		}
		fmt.Fprintf(out, "%-24s %-14s %s\n", r.Scenario.Name, status, filepath.Join(opts.outputDir, r.Scenario.Name))
		if r.Err != nil {
			fmt.Fprintf(out, "  %v\n", r.Err)
		}
	}
	if failed > 0 {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("%d of %d scenarios failed", failed, len(results))}
	}
	return nil
}

func printResult(out io.Writer, res *engine.Result) {
	fmt.Fprintf(out, "Exit code: %d, warnings: %d, severe errors: %d, duration: %s\n",
		res.ExitCode, res.Summary.Warnings, res.Summary.SevereErrors, res.Duration.Round(time.Millisecond))
	for _, f := range engine.OutputFiles {
		mark := "missing"
		if res.OutputFiles[f] {
			mark = "ok"
		}
		fmt.Fprintf(out, "  %-14s %s\n", f, mark)
	}
	if len(res.ErrTail) > 0 {
		fmt.Fprintln(out, "Last lines of eplusout.err:")
		for _, l := range res.ErrTail {
			fmt.Fprintf(out, "  %s\n", l)
		}
	}
}
