package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eplus-at/eplus-resources/internal/bootstrap"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/engine"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/repository"
	simservice "github.com/eplus-at/eplus-resources/internal/energyplus_simulation/service"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/service"
)

const libraryIDF = `
Material, Beton_20cm, MediumRough, 0.20, 2.0, 2400, 1000;
Material, Daemmung_10cm, Rough, 0.10, 0.04, 20, 1400;
Construction, AT_Außenwand_Test, Beton_20cm, Daemmung_10cm;
`

type stubEngine struct{}

func (stubEngine) Run(_ context.Context, req engine.Request) (*engine.Result, error) {
	return &engine.Result{
		Success:     true,
		Duration:    1500 * time.Millisecond,
		Summary:     engine.ErrSummary{Warnings: 2, Completed: true},
		OutputFiles: map[string]bool{engine.CSVFile: true, engine.ErrFile: true},
	}, nil
}

type memSummaries struct {
	mu    sync.Mutex
	saved map[string]*domain.SimulationSummary
}

func (m *memSummaries) CreateOrUpdate(_ context.Context, s *domain.SimulationSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[s.RunID] = s
	return nil
}

func (m *memSummaries) GetByRunID(_ context.Context, runID string) (*domain.SimulationSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.saved[runID]
	if !ok {
		return nil, domain.ErrSummaryNotFound
	}
	return s, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *simservice.SimulationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	dir := t.TempDir()
	res := filepath.Join(dir, "resources")
	require.NoError(t, os.MkdirAll(res, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(res, "walls.idf"), []byte(libraryIDF), 0o644))

	mgr, err := service.Open(service.Options{ResourcesPath: res, CacheDir: filepath.Join(dir, "cache")}, log)
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sims := simservice.NewSimulationService(
		repository.NewRunRepository(client),
		&memSummaries{saved: map[string]*domain.SimulationSummary{}},
		stubEngine{},
		simservice.Defaults{WeatherFile: "weather/test.epw", OutputDir: filepath.Join(dir, "output")},
		log,
	)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "eplus-api",
		Version:       "test",
		SimRatePerMin: 60,
		Log:           log,
		Resources:     mgr,
		Simulations:   sims,
	})
	return r, sims
}

func do(r http.Handler, method, path, user string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-Id", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_ResourceEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/api/v1/resources/validation", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Issues map[string][]string `json:"issues"`
		Total  int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Greater(t, body.Total, 0)
	assert.NotEmpty(t, body.Issues["u_value_too_high"])

	w = do(r, http.MethodGet, "/api/v1/resources/materials", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Daemmung_10cm")
}

func TestRouter_SimulationLifecycle(t *testing.T) {
	r, sims := setupRouter(t)

	w := do(r, http.MethodPost, "/api/v1/simulations/runs", "user123", []byte(`{"idf_path":"models/efh.idf"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Run domain.SimulationRun `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	runID := created.Run.RunID
	require.NotEmpty(t, runID)
	assert.Equal(t, "weather/test.epw", created.Run.WeatherFile)

	sims.Wait()

	w = do(r, http.MethodGet, "/api/v1/simulations/runs/"+runID, "user123", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Run domain.SimulationRun `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusCompleted, got.Run.Status)

	w = do(r, http.MethodGet, "/api/v1/simulations/runs/"+runID+"/summary", "user123", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum struct {
		Summary domain.SimulationSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.True(t, sum.Summary.Success)
	assert.Equal(t, int64(2), sum.Summary.Warnings)
	assert.True(t, sum.Summary.OutputFiles[engine.CSVFile])

	w = do(r, http.MethodGet, "/api/v1/simulations/runs/"+runID, "someone-else", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/v1/simulations/runs/"+runID+"/cancel", "user123", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/simulations/runs/"+runID, "user123", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/api/v1/simulations/runs/"+runID, "user123", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
