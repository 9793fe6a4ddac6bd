package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/time-matcha/timematcha-backend/internal/identity"
	"github.com/time-matcha/timematcha-backend/internal/projects/domain"
	"github.com/time-matcha/timematcha-backend/internal/projects/repository"
	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

type createReq struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Dates     []string `json:"dates"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !schedule.ValidClock(req.StartTime) || !schedule.ValidClock(req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "start_time and end_time must be HH:MM"})
		return
	}
	if !schedule.ClockBefore(req.StartTime, req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "start_time must be before end_time"})
		return
	}

	dates, err := normalizeDates(req.Dates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	userID := identity.UserDBID(c)
	p, err := h.store.Create(c.Request.Context(), userID, repository.CreateProject{
		Name:      strings.TrimSpace(req.Name),
		Location:  strings.TrimSpace(req.Location),
		Dates:     dates,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := identity.UserDBID(c)
	oldestFirst := c.Query("order") == "oldest"

	items, err := h.store.ListForUser(c.Request.Context(), userID, oldestFirst)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.store.GetByPublicID(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type updateReq struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	publicID := c.Param("public_id")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" && req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "nothing to update"})
		return
	}
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid status"})
		return
	}

	userID := identity.UserDBID(c)
	var p *domain.Project
	var err error
	if name != "" {
		p, err = h.store.Rename(c.Request.Context(), userID, publicID, name)
	}
	if err == nil && req.Status != "" {
		p, err = h.store.SetStatus(c.Request.Context(), userID, publicID, req.Status)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	h.invalidate(c, publicID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type addDateReq struct {
	Date string `json:"date"`
}

func (h *Handler) addDate(c *gin.Context) {
	publicID := c.Param("public_id")

	var req addDateReq
	if err := c.ShouldBindJSON(&req); err != nil || !validDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "date must be YYYY-MM-DD"})
		return
	}

	userID := identity.UserDBID(c)
	p, err := h.store.AddDate(c.Request.Context(), userID, publicID, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateDate):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "date already in project"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	h.invalidate(c, publicID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) removeDate(c *gin.Context) {
	publicID := c.Param("public_id")
	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "date must be YYYY-MM-DD"})
		return
	}

	userID := identity.UserDBID(c)
	p, err := h.store.RemoveDate(c.Request.Context(), userID, publicID, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "date not in project"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	h.invalidate(c, publicID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	publicID := c.Param("public_id")
	userID := identity.UserDBID(c)

	ok, err := h.store.SoftDelete(c.Request.Context(), userID, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	h.invalidate(c, publicID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) invalidate(c *gin.Context, publicID string) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Invalidate(c.Request.Context(), publicID); err != nil {
		log.Printf("dashboard invalidate %s: %v", publicID, err)
	}
}

func normalizeDates(dates []string) ([]string, error) {
	out := make([]string, 0, len(dates))
	seen := map[string]bool{}
	for _, d := range dates {
		if !validDate(d) {
			return nil, errors.New("dates must be YYYY-MM-DD")
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
