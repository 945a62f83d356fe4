package http

import "github.com/gin-gonic/gin"

// Register mounts the simulation routes. submit wraps run creation, e.g.
// with a rate limiter.
func (h *Handler) Register(rg *gin.RouterGroup, submit ...gin.HandlerFunc) {
	rg.POST("/runs", append(submit, h.CreateRun)...)
	rg.GET("/runs", h.ListRuns)
	rg.GET("/runs/:id", h.GetRun)
	rg.GET("/runs/:id/summary", h.GetSummary)
	rg.GET("/runs/:id/events", h.StreamRunEvents)
	rg.POST("/runs/:id/cancel", h.CancelRun)
	rg.DELETE("/runs/:id", h.DeleteRun)
}
