package http

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/report"
	"github.com/eplus-at/eplus-resources/internal/resource_management/service"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
)

// ResourceService is the part of the resource manager the API exposes.
type ResourceService interface {
	Stats() store.LoadStats
	Reload() (store.LoadStats, error)
	MaterialsTable() report.Table
	ConstructionsTable() report.Table
	Construction(name string) (service.ConstructionDetail, error)
	Validate() domain.Issues
	UpdateCache(dir string) error
	CreateProject(name, buildingType string) (service.Project, error)
}

// Handler handles HTTP requests for the resource library
type Handler struct {
	svc ResourceService
}

// New creates a new Handler
func New(svc ResourceService) *Handler {
	return &Handler{svc: svc}
}

// ListMaterials returns the material database table
func (h *Handler) ListMaterials(c *gin.Context) {
	t := h.svc.MaterialsTable()
	c.JSON(http.StatusOK, gin.H{"columns": t.Columns, "rows": t.Rows, "count": len(t.Rows)})
}

// ListConstructions returns the construction report table
func (h *Handler) ListConstructions(c *gin.Context) {
	t := h.svc.ConstructionsTable()
	c.JSON(http.StatusOK, gin.H{"columns": t.Columns, "rows": t.Rows, "count": len(t.Rows)})
}

// GetConstruction returns one construction with its U-value breakdown
func (h *Handler) GetConstruction(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "construction name is required"})
		return
	}

	detail, err := h.svc.Construction(name)
	if err != nil {
		if errors.Is(err, domain.ErrConstructionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "construction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get construction"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Validate runs the standards check over every construction
func (h *Handler) Validate(c *gin.Context) {
	issues := h.svc.Validate()
	c.JSON(http.StatusOK, gin.H{"issues": issues, "total": issues.Total()})
}

// Stats returns the result of the last resource scan
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.svc.Stats()})
}

// Reload rescans the resource directory
func (h *Handler) Reload(c *gin.Context) {
	stats, err := h.svc.Reload()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload resources: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// RefreshCache merges the current tables into the configured cache
func (h *Handler) RefreshCache(c *gin.Context) {
	if err := h.svc.UpdateCache(""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cache: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// CreateProject scaffolds a new project directory
func (h *Handler) CreateProject(c *gin.Context) {
	var body struct {
		Name         string `json:"name" binding:"required"`
		BuildingType string `json:"building_type,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.BuildingType == "" {
		body.BuildingType = service.BuildingTypeEFH
	}

	p, err := h.svc.CreateProject(body.Name, body.BuildingType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProjectName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project name"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	p.Path = filepath.ToSlash(p.Path)
	c.JSON(http.StatusCreated, gin.H{"project": p})
}
