package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
)

const (
	pollInterval      = 1 * time.Second
	keepAliveInterval = 15 * time.Second
)

// StreamRunEvents streams run updates as Server-Sent Events until the run
// finishes, is deleted, or the client goes away.
func (h *Handler) StreamRunEvents(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}
	runID := run.RunID

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	send := func(event string, payload interface{}) {
		data, _ := json.Marshal(payload)
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	send("initial", gin.H{"run": run})
	if domain.IsTerminal(run.Status) {
		send("done", gin.H{"run": run})
		return
	}

	ctx := c.Request.Context()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	lastUpdatedAt := run.UpdatedAt

	for {
		select {
		case <-ctx.Done():
			return

		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case <-poll.C:
			updated, err := h.simService.GetRun(ctx, runID)
			if err != nil {
				if errors.Is(err, domain.ErrRunNotFound) {
					send("deleted", gin.H{"event": "deleted", "run_id": runID})
					return
				}
				continue
			}

			if !updated.UpdatedAt.After(lastUpdatedAt) {
				continue
			}
			lastUpdatedAt = updated.UpdatedAt
			send("update", gin.H{"run": updated})

			if domain.IsTerminal(updated.Status) {
				send("done", gin.H{"run": updated})
				return
			}
		}
	}
}
