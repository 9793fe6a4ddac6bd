package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	projdomain "github.com/time-matcha/timematcha-backend/internal/projects/domain"
	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

type Handler struct {
	svc *Service
}

// Register attaches dashboard routes under the projects group.
func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.GET("/:public_id/dashboard", h.dashboard)
	rg.GET("/:public_id/dashboard/stream", h.stream)
}

func (h *Handler) dashboard(c *gin.Context) {
	mode := schedule.Mode(c.DefaultQuery("mode", string(schedule.ModeFull)))
	if !schedule.ValidMode(mode) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "mode must be full, mostly or custom"})
		return
	}

	var selected []string
	if raw := c.Query("members"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				selected = append(selected, id)
			}
		}
	}
	if mode == schedule.ModeCustom && len(selected) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "custom mode requires members"})
		return
	}

	view, err := h.svc.Dashboard(c.Request.Context(), c.Param("public_id"), mode, selected)
	if err != nil {
		if errors.Is(err, projdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": view})
}

// stream pushes the current snapshot, then a "changed" event whenever any
// participant saves, via Server-Sent Events. Clients refetch on "changed";
// there is no incremental update protocol.
func (h *Handler) stream(c *gin.Context) {
	publicID := c.Param("public_id")

	snap, err := h.svc.Snapshot(c.Request.Context(), publicID)
	if err != nil {
		if errors.Is(err, projdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	initial, _ := json.Marshal(gin.H{"snapshot": snap})
	fmt.Fprintf(c.Writer, "event: initial\ndata: %s\n\n", initial)
	flusher.Flush()

	ctx := c.Request.Context()

	sub := h.svc.cache.Subscribe(ctx, publicID)
	defer sub.Close()
	events := sub.Channel()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case msg, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "event: changed\ndata: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}
