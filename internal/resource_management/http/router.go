package http

import "github.com/gin-gonic/gin"

// Register registers the resource routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Stats)
	rg.GET("/materials", h.ListMaterials)
	rg.GET("/constructions", h.ListConstructions)
	rg.GET("/constructions/:name", h.GetConstruction)
	rg.GET("/validation", h.Validate)
	rg.POST("/reload", h.Reload)
	rg.POST("/cache", h.RefreshCache)
	rg.POST("/projects", h.CreateProject)
}
