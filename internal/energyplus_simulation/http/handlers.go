package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
)

// SimulationService is the part of the simulation service the API exposes.
type SimulationService interface {
	Submit(ctx context.Context, req *domain.CreateRunRequest) (*domain.SimulationRun, error)
	GetRun(ctx context.Context, runID string) (*domain.SimulationRun, error)
	ListRunsByUser(ctx context.Context, userID string) ([]*domain.SimulationRun, error)
	GetSummary(ctx context.Context, runID string) (*domain.SimulationSummary, error)
	CancelRun(ctx context.Context, runID string) (*domain.SimulationRun, error)
	DeleteRun(ctx context.Context, runID string) error
}

// Handler handles HTTP requests for simulation runs
type Handler struct {
	simService SimulationService
}

func New(simService SimulationService) *Handler {
	return &Handler{simService: simService}
}

func userID(c *gin.Context) string {
	return c.GetHeader("X-User-Id")
}

// CreateRun submits a new simulation run
func (h *Handler) CreateRun(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var body struct {
		IDFPath     string                 `json:"idf_path" binding:"required"`
		WeatherFile string                 `json:"weather_file,omitempty"`
		Metadata    map[string]interface{} `json:"metadata,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	run, err := h.simService.Submit(c.Request.Context(), &domain.CreateRunRequest{
		UserID:      uid,
		IDFPath:     body.IDFPath,
		WeatherFile: body.WeatherFile,
		Metadata:    body.Metadata,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create run"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"run": run})
}

// GetRun retrieves a simulation run by ID
func (h *Handler) GetRun(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run})
}

// ListRuns lists the caller's runs
func (h *Handler) ListRuns(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	runs, err := h.simService.ListRunsByUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// GetSummary returns the stored outcome of a finished run
func (h *Handler) GetSummary(c *gin.Context) {
	if _, ok := h.loadRun(c); !ok {
		return
	}

	summary, err := h.simService.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// CancelRun stops a pending or running simulation
func (h *Handler) CancelRun(c *gin.Context) {
	if _, ok := h.loadRun(c); !ok {
		return
	}

	run, err := h.simService.CancelRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRunFinished) {
			c.JSON(http.StatusConflict, gin.H{"error": "run already finished"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel run"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run})
}

// DeleteRun deletes a simulation run
func (h *Handler) DeleteRun(c *gin.Context) {
	if _, ok := h.loadRun(c); !ok {
		return
	}

	if err := h.simService.DeleteRun(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete run"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "run deleted"})
}

// loadRun fetches the run named in the path and checks the caller owns it.
// It writes the error response itself.
func (h *Handler) loadRun(c *gin.Context) (*domain.SimulationRun, bool) {
	runID := c.Param("id")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "run ID is required"})
		return nil, false
	}

	run, err := h.simService.GetRun(c.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get run"})
		return nil, false
	}

	if uid := userID(c); uid == "" || run.UserID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return nil, false
	}
	return run, true
}
