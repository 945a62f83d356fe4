package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
)

type Options struct {
	Binary        string
	Root          string
	ExpandObjects bool
	ReadVars      bool
	TailLines     int
}

// Request is one model/weather pair to simulate.
type Request struct {
	IDFPath     string
	WeatherFile string
	OutputDir   string
}

// Result is everything known about a finished engine process.
type Result struct {
	ExitCode    int             `json:"exit_code"`
	Success     bool            `json:"success"`
	Duration    time.Duration   `json:"duration"`
	Stderr      string          `json:"stderr,omitempty"`
	ErrTail     []string        `json:"err_tail,omitempty"`
	Summary     ErrSummary      `json:"summary"`
	OutputFiles map[string]bool `json:"output_files"`
}

type Runner struct {
	opts Options
	log  *logger.Logger
}

func NewRunner(opts Options, log *logger.Logger) *Runner {
	if opts.TailLines <= 0 {
		opts.TailLines = DefaultTailLines
	}
	return &Runner{opts: opts, log: log.With("component", "energyplus")}
}

// Args builds the command line for req.
func (r *Runner) Args(req Request) []string {
	var args []string
	if r.opts.ExpandObjects {
		args = append(args, "-x")
	}
	args = append(args, "-w", req.WeatherFile, "-d", req.OutputDir)
	if r.opts.ReadVars {
		args = append(args, "-r")
	}
	return append(args, req.IDFPath)
}

// Run executes EnergyPlus and inspects its output directory. A non-zero
// exit is reported through Result.Success; the error is reserved for runs
// that could not start or were cancelled.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	bin, err := Locate(r.opts.Binary, r.opts.Root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	args := r.Args(req)
	r.log.Info("starting simulation", "idf", req.IDFPath, "weather", req.WeatherFile, "out", req.OutputDir)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	cmd.Stdout = &bytes.Buffer{}

	start := time.Now()
	runErr := cmd.Run()
	res := &Result{Duration: time.Since(start), Stderr: stderr.String()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("simulation interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		res.Success = true
	case errors.As(runErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, fmt.Errorf("run energyplus: %w", runErr)
	}

	r.inspect(req.OutputDir, res)

	if res.Success {
		r.log.Info("simulation finished", "out", req.OutputDir, "duration", res.Duration, "warnings", res.Summary.Warnings)
	} else {
		r.log.Error("simulation failed", "out", req.OutputDir, "exit_code", res.ExitCode, "stderr", res.Stderr)
	}
	return res, nil
}

func (r *Runner) inspect(dir string, res *Result) {
	res.OutputFiles = make(map[string]bool, len(OutputFiles))
	for _, f := range OutputFiles {
		_, err := os.Stat(filepath.Join(dir, f))
		res.OutputFiles[f] = err == nil
	}

	errPath := filepath.Join(dir, ErrFile)
	if !res.OutputFiles[ErrFile] {
		return
	}
	if tail, err := ReadTail(errPath, r.opts.TailLines); err == nil {
		res.ErrTail = tail
	} else {
		r.log.Warn("could not read error file", "path", errPath, "error", err)
	}
	if sum, err := ReadErrFile(errPath); err == nil {
		res.Summary = sum
	}
}
