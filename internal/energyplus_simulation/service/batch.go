package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/engine"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
)

// BatchResult is the outcome of one scenario in a batch.
type BatchResult struct {
	Scenario domain.Scenario `json:"scenario"`
	IDFPath  string          `json:"idf_path,omitempty"`
	Result   *engine.Result  `json:"result,omitempty"`
	Err      error           `json:"-"`
}

type Batch struct {
	engine    Engine
	outputDir string
	log       *logger.Logger
}

func NewBatch(eng Engine, outputDir string, log *logger.Logger) *Batch {
	return &Batch{engine: eng, outputDir: outputDir, log: log.With("component", "batch")}
}

// CreateScenarioIDF would write a copy of base with the scenario's
// construction replacements applied. Rewriting model files is not
// implemented.
func CreateScenarioIDF(base string, sc domain.Scenario, outDir string) (string, error) {
	return "", fmt.Errorf("scenario %s: rewrite %s: %w", sc.Name, base, domain.ErrNotSupported)
}

// Run simulates every scenario in order. A failing scenario is recorded
// and the rest still run.
func (b *Batch) Run(ctx context.Context, base string, scenarios []domain.Scenario) []BatchResult {
	results := make([]BatchResult, 0, len(scenarios))
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			results = append(results, BatchResult{Scenario: sc, Err: err})
			continue
		}
		results = append(results, b.runOne(ctx, base, sc))
	}
	return results
}

func (b *Batch) runOne(ctx context.Context, base string, sc domain.Scenario) BatchResult {
	out := BatchResult{Scenario: sc}
	dir := filepath.Join(b.outputDir, sc.Name)

	idf := base
	if len(sc.Constructions) > 0 {
		path, err := CreateScenarioIDF(base, sc, dir)
		if err != nil {
			b.log.Warn("scenario skipped", "scenario", sc.Name, "error", err)
			out.Err = err
			return out
		}
		idf = path
	}
	out.IDFPath = idf

	res, err := b.engine.Run(ctx, engine.Request{IDFPath: idf, WeatherFile: sc.Weather(), OutputDir: dir})
	if err != nil {
		b.log.Error("scenario failed", "scenario", sc.Name, "error", err)
		out.Err = err
		return out
	}
	out.Result = res
	if !res.Success {
		out.Err = fmt.Errorf("scenario %s: energyplus exited with code %d", sc.Name, res.ExitCode)
	}
	return out
}
