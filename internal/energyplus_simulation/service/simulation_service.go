package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/engine"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
)

type RunStore interface {
	Create(ctx context.Context, run *domain.SimulationRun) error
	GetByRunID(ctx context.Context, runID string) (*domain.SimulationRun, error)
	Update(ctx context.Context, run *domain.SimulationRun) error
	ListByUserID(ctx context.Context, userID string) ([]string, error)
	ListByStatus(ctx context.Context, status string) ([]string, error)
	Delete(ctx context.Context, runID string) error
}

type SummaryStore interface {
	CreateOrUpdate(ctx context.Context, summary *domain.SimulationSummary) error
	GetByRunID(ctx context.Context, runID string) (*domain.SimulationSummary, error)
}

// Engine runs one simulation to completion.
type Engine interface {
	Run(ctx context.Context, req engine.Request) (*engine.Result, error)
}

// Defaults fill in what a run request leaves empty.
type Defaults struct {
	WeatherFile string
	OutputDir   string
}

// SimulationService tracks runs and drives the engine for submitted ones.
type SimulationService struct {
	runs      RunStore
	summaries SummaryStore
	engine    Engine
	defaults  Defaults
	log       *logger.Logger

	mu     sync.Mutex
	active map[string]context.CancelFunc
	wg     sync.WaitGroup
}

// NewSimulationService wires the service. summaries may be nil when no
// database is configured.
func NewSimulationService(runs RunStore, summaries SummaryStore, eng Engine, defaults Defaults, log *logger.Logger) *SimulationService {
	return &SimulationService{
		runs:      runs,
		summaries: summaries,
		engine:    eng,
		defaults:  defaults,
		log:       log.With("service", "simulation"),
		active:    make(map[string]context.CancelFunc),
	}
}

func (s *SimulationService) CreateRun(ctx context.Context, req *domain.CreateRunRequest) (*domain.SimulationRun, error) {
	if req.IDFPath == "" {
		return nil, fmt.Errorf("idf path is required")
	}

	now := time.Now()
	run := &domain.SimulationRun{
		RunID:       uuid.New().String(),
		UserID:      req.UserID,
		Status:      domain.StatusPending,
		IDFPath:     req.IDFPath,
		WeatherFile: req.WeatherFile,
		OutputDir:   req.OutputDir,
		CreatedAt:   now,
		UpdatedAt:   now,
		Metadata:    req.Metadata,
	}
	if run.WeatherFile == "" {
		run.WeatherFile = s.defaults.WeatherFile
	}
	if run.OutputDir == "" {
		run.OutputDir = filepath.Join(s.defaults.OutputDir, run.RunID)
	}
	if run.Metadata == nil {
		run.Metadata = make(map[string]interface{})
	}

	if err := s.runs.Create(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SimulationService) GetRun(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	return s.runs.GetByRunID(ctx, runID)
}

// UpdateRun applies a partial update. Finished runs keep their status.
func (s *SimulationService) UpdateRun(ctx context.Context, runID string, req *domain.UpdateRunRequest) (*domain.SimulationRun, error) {
	run, err := s.runs.GetByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !isValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		if domain.IsTerminal(run.Status) && *req.Status != run.Status {
			return nil, domain.ErrRunFinished
		}
		run.Status = *req.Status
		if domain.IsTerminal(run.Status) && run.CompletedAt == nil {
			now := time.Now()
			run.CompletedAt = &now
		}
	}

	if req.Error != nil {
		run.Error = *req.Error
	}

	if len(req.Metadata) > 0 {
		if run.Metadata == nil {
			run.Metadata = make(map[string]interface{})
		}
		for k, v := range req.Metadata {
			run.Metadata[k] = v
		}
	}

	if err := s.runs.Update(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRunsByUser returns a user's runs, newest first. Runs whose data has
// expired are skipped.
func (s *SimulationService) ListRunsByUser(ctx context.Context, userID string) ([]*domain.SimulationRun, error) {
	ids, err := s.runs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	runs := make([]*domain.SimulationRun, 0, len(ids))
	for _, id := range ids {
		run, err := s.runs.GetByRunID(ctx, id)
		if errors.Is(err, domain.ErrRunNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
	return runs, nil
}

func (s *SimulationService) ListRunsByStatus(ctx context.Context, status string) ([]string, error) {
	if !isValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.runs.ListByStatus(ctx, status)
}

// DeleteRun stops the run if it is executing and removes it.
func (s *SimulationService) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	cancel, ok := s.active[runID]
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return s.runs.Delete(ctx, runID)
}

func (s *SimulationService) GetSummary(ctx context.Context, runID string) (*domain.SimulationSummary, error) {
	if s.summaries == nil {
		return nil, domain.ErrSummaryNotFound
	}
	return s.summaries.GetByRunID(ctx, runID)
}

// Submit creates a run and executes it in the background.
func (s *SimulationService) Submit(ctx context.Context, req *domain.CreateRunRequest) (*domain.SimulationRun, error) {
	run, err := s.CreateRun(ctx, req)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.active[run.RunID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.active, run.RunID)
			s.mu.Unlock()
			cancel()
		}()
		if _, err := s.Execute(runCtx, run.RunID); err != nil {
			s.log.Error("simulation run failed", "run_id", run.RunID, "error", err)
		}
	}()

	return run, nil
}

// Execute runs a pending run in the calling goroutine and records the
// outcome.
func (s *SimulationService) Execute(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	// Status writes use a detached context so a cancelled run can still be
	// marked as such.
	store := context.WithoutCancel(ctx)

	run, err := s.setStatus(store, runID, domain.StatusRunning, "")
	if err != nil {
		return nil, err
	}

	res, runErr := s.engine.Run(ctx, engine.Request{
		IDFPath:     run.IDFPath,
		WeatherFile: run.WeatherFile,
		OutputDir:   run.OutputDir,
	})

	switch {
	case runErr != nil && ctx.Err() != nil:
		return s.setStatus(store, runID, domain.StatusCancelled, "cancelled")
	case runErr != nil:
		return s.setStatus(store, runID, domain.StatusFailed, runErr.Error())
	}

	s.saveSummary(store, runID, res)

	if !res.Success {
		return s.setStatus(store, runID, domain.StatusFailed, fmt.Sprintf("energyplus exited with code %d", res.ExitCode))
	}
	return s.setStatus(store, runID, domain.StatusCompleted, "")
}

// CancelRun stops an executing run or marks a pending one as cancelled.
func (s *SimulationService) CancelRun(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	s.mu.Lock()
	cancel, ok := s.active[runID]
	s.mu.Unlock()
	if ok {
		cancel()
		return s.runs.GetByRunID(ctx, runID)
	}
	return s.setStatus(ctx, runID, domain.StatusCancelled, "cancelled")
}

// Wait blocks until every submitted run has finished.
func (s *SimulationService) Wait() {
	s.wg.Wait()
}

// Shutdown cancels every executing run and waits until they have recorded
// their final status or ctx expires.
func (s *SimulationService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for runID, cancel := range s.active {
		s.log.Info("cancelling run for shutdown", "run_id", runID)
		cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SimulationService) setStatus(ctx context.Context, runID, status, msg string) (*domain.SimulationRun, error) {
	req := &domain.UpdateRunRequest{Status: &status}
	if msg != "" {
		req.Error = &msg
	}
	return s.UpdateRun(ctx, runID, req)
}

func (s *SimulationService) saveSummary(ctx context.Context, runID string, res *engine.Result) {
	if s.summaries == nil {
		return
	}
	summary := &domain.SimulationSummary{
		RunID:        runID,
		ExitCode:     res.ExitCode,
		Success:      res.Success,
		Warnings:     int64(res.Summary.Warnings),
		SevereErrors: int64(res.Summary.SevereErrors),
		Fatal:        res.Summary.Fatal,
		DurationMs:   res.Duration.Milliseconds(),
		OutputFiles:  res.OutputFiles,
		ErrTail:      res.ErrTail,
	}
	if err := s.summaries.CreateOrUpdate(ctx, summary); err != nil {
		s.log.Warn("could not store simulation summary", "run_id", runID, "error", err)
	}
}

func isValidStatus(status string) bool {
	return status == domain.StatusPending ||
		status == domain.StatusRunning ||
		status == domain.StatusCompleted ||
		status == domain.StatusFailed ||
		status == domain.StatusCancelled
}
