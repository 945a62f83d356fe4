package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
)

const (
	runKeyPrefix          = "eplus:run:"       // eplus:run:{run_id}
	userRunSetPrefix      = "eplus:user:"      // eplus:user:{user_id}:runs
	statusRunSetPrefix    = "eplus:status:"    // eplus:status:{status}
	runEventChannelPrefix = "eplus:events:"    // eplus:events:{run_id}
	runTTL                = 7 * 24 * time.Hour // runs expire after a week
)

// RunRepository keeps simulation runs in Redis.
type RunRepository struct {
	client *redis.Client
}

func NewRunRepository(client *redis.Client) *RunRepository {
	return &RunRepository{client: client}
}

// Create stores a new run and indexes it under its user.
func (r *RunRepository) Create(ctx context.Context, run *domain.SimulationRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	now := time.Now()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	if run.UpdatedAt.IsZero() {
		run.UpdatedAt = now
	}

	runData, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run data: %w", err)
	}

	userRunSetKey := r.userRunSetKey(run.UserID)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.runKey(run.RunID), runData, runTTL)
	pipe.SAdd(ctx, userRunSetKey, run.RunID)
	pipe.Expire(ctx, userRunSetKey, runTTL)
	if run.Status != "" {
		pipe.SAdd(ctx, r.statusRunSetKey(run.Status), run.RunID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (r *RunRepository) GetByRunID(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	data, err := r.client.Get(ctx, r.runKey(runID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run domain.SimulationRun
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run data: %w", err)
	}
	return &run, nil
}

// Update overwrites a run and publishes it on the run's event channel.
func (r *RunRepository) Update(ctx context.Context, run *domain.SimulationRun) error {
	existing, err := r.GetByRunID(ctx, run.RunID)
	if err != nil {
		return err
	}

	run.UpdatedAt = time.Now()
	runData, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.runKey(run.RunID), runData, runTTL)
	if run.Status != existing.Status {
		if existing.Status != "" {
			pipe.SRem(ctx, r.statusRunSetKey(existing.Status), run.RunID)
		}
		pipe.SAdd(ctx, r.statusRunSetKey(run.Status), run.RunID)
	}
	if run.Status != "" {
		pipe.Publish(ctx, r.runEventChannel(run.RunID), runData)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// ListByUserID returns the run IDs a user owns, in no particular order.
func (r *RunRepository) ListByUserID(ctx context.Context, userID string) ([]string, error) {
	runIDs, err := r.client.SMembers(ctx, r.userRunSetKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for user: %w", err)
	}
	return runIDs, nil
}

// ListByStatus returns the IDs of runs currently in status.
func (r *RunRepository) ListByStatus(ctx context.Context, status string) ([]string, error) {
	runIDs, err := r.client.SMembers(ctx, r.statusRunSetKey(status)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs by status: %w", err)
	}
	return runIDs, nil
}

func (r *RunRepository) Delete(ctx context.Context, runID string) error {
	run, err := r.GetByRunID(ctx, runID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.runKey(runID))
	pipe.SRem(ctx, r.userRunSetKey(run.UserID), runID)
	if run.Status != "" {
		pipe.SRem(ctx, r.statusRunSetKey(run.Status), runID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// Subscribe listens for updates of one run. The caller closes the PubSub.
func (r *RunRepository) Subscribe(ctx context.Context, runID string) *redis.PubSub {
	return r.client.Subscribe(ctx, r.runEventChannel(runID))
}

func (r *RunRepository) runKey(runID string) string {
	return runKeyPrefix + runID
}

func (r *RunRepository) userRunSetKey(userID string) string {
	return fmt.Sprintf("%s%s:runs", userRunSetPrefix, userID)
}

func (r *RunRepository) statusRunSetKey(status string) string {
	return statusRunSetPrefix + status
}

func (r *RunRepository) runEventChannel(runID string) string {
	return runEventChannelPrefix + runID
}
