package domain

import "time"

// SimulationRun tracks one EnergyPlus invocation.
type SimulationRun struct {
	RunID       string                 `json:"run_id"`
	UserID      string                 `json:"user_id"`
	Status      string                 `json:"status"` // pending, running, completed, failed, cancelled
	IDFPath     string                 `json:"idf_path"`
	WeatherFile string                 `json:"weather_file"`
	OutputDir   string                 `json:"output_dir"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// RunStatus constants
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// IsTerminal reports whether no further transitions are expected.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed || status == StatusCancelled
}

// CreateRunRequest represents data needed to create a new simulation run
type CreateRunRequest struct {
	UserID      string
	IDFPath     string
	WeatherFile string
	OutputDir   string
	Metadata    map[string]interface{}
}

// UpdateRunRequest represents data for updating a simulation run
type UpdateRunRequest struct {
	Status   *string
	Error    *string
	Metadata map[string]interface{}
}

// SimulationSummary is the persisted outcome of a finished run.
type SimulationSummary struct {
	ID           string          `json:"id"`
	RunID        string          `json:"run_id"`
	ExitCode     int             `json:"exit_code"`
	Success      bool            `json:"success"`
	Warnings     int64           `json:"warnings"`
	SevereErrors int64           `json:"severe_errors"`
	Fatal        bool            `json:"fatal"`
	DurationMs   int64           `json:"duration_ms"`
	OutputFiles  map[string]bool `json:"output_files"`
	ErrTail      []string        `json:"err_tail"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
