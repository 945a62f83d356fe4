package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
)

// SummaryRepository persists finished-run summaries in PostgreSQL.
type SummaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// CreateOrUpdate upserts a summary keyed on run_id.
func (r *SummaryRepository) CreateOrUpdate(ctx context.Context, summary *domain.SimulationSummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}

	query := `
		INSERT INTO simulation_summaries (
			id, run_id, exit_code, success, warnings, severe_errors,
			fatal, duration_ms, output_files, err_tail
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (run_id) DO UPDATE SET
			exit_code = EXCLUDED.exit_code,
			success = EXCLUDED.success,
			warnings = EXCLUDED.warnings,
			severe_errors = EXCLUDED.severe_errors,
			fatal = EXCLUDED.fatal,
			duration_ms = EXCLUDED.duration_ms,
			output_files = EXCLUDED.output_files,
			err_tail = EXCLUDED.err_tail,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	outputJSON, err := json.Marshal(summary.OutputFiles)
	if err != nil {
		outputJSON = []byte("{}")
	}
	tailJSON, err := json.Marshal(summary.ErrTail)
	if err != nil || summary.ErrTail == nil {
		tailJSON = []byte("[]")
	}

	err = r.db.QueryRowContext(ctx, query,
		summary.ID,
		summary.RunID,
		summary.ExitCode,
		summary.Success,
		summary.Warnings,
		summary.SevereErrors,
		summary.Fatal,
		summary.DurationMs,
		outputJSON,
		tailJSON,
	).Scan(&summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create or update summary: %w", err)
	}
	return nil
}

func (r *SummaryRepository) GetByRunID(ctx context.Context, runID string) (*domain.SimulationSummary, error) {
	query := `
		SELECT id, run_id, exit_code, success, warnings, severe_errors,
		       fatal, duration_ms, output_files, err_tail, created_at, updated_at
		FROM simulation_summaries
		WHERE run_id = $1
	`

	var s domain.SimulationSummary
	var outputJSON, tailJSON []byte
	err := r.db.QueryRowContext(ctx, query, runID).Scan(
		&s.ID,
		&s.RunID,
		&s.ExitCode,
		&s.Success,
		&s.Warnings,
		&s.SevereErrors,
		&s.Fatal,
		&s.DurationMs,
		&outputJSON,
		&tailJSON,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	s.OutputFiles = make(map[string]bool)
	if len(outputJSON) > 0 {
		_ = json.Unmarshal(outputJSON, &s.OutputFiles)
	}
	if len(tailJSON) > 0 {
		_ = json.Unmarshal(tailJSON, &s.ErrTail)
	}
	return &s, nil
}

func (r *SummaryRepository) Exists(ctx context.Context, runID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM simulation_summaries WHERE run_id = $1)`, runID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check if summary exists: %w", err)
	}
	return exists, nil
}
