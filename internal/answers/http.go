package answers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/time-matcha/timematcha-backend/internal/identity"
	projdomain "github.com/time-matcha/timematcha-backend/internal/projects/domain"
	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

// ProjectGetter resolves the project an answer belongs to.
type ProjectGetter interface {
	GetByPublicID(ctx context.Context, publicID string) (*projdomain.Project, error)
}

// Notifier invalidates derived views after an answer save.
type Notifier interface {
	Invalidate(ctx context.Context, projectID string) error
}

type Handler struct {
	repo     *Repo
	projects ProjectGetter
	notifier Notifier
}

// Register attaches answer routes under the projects group.
func Register(rg *gin.RouterGroup, repo *Repo, projects ProjectGetter, notifier Notifier) {
	h := &Handler{repo: repo, projects: projects, notifier: notifier}

	rg.GET("/:public_id/answers", h.list)
	rg.GET("/:public_id/answers/me", h.mine)
	rg.PUT("/:public_id/answers", h.saveFull)
	rg.PUT("/:public_id/answers/dates/:date", h.saveDate)
}

func (h *Handler) list(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}

	items, err := h.repo.ListByProject(c.Request.Context(), p.PublicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "answers": items})
}

func (h *Handler) mine(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}

	a, err := h.repo.Get(c.Request.Context(), p.PublicID, identity.UserDBID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no answer yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "answer": a})
}

type saveFullReq struct {
	Name         string                        `json:"name"`
	Avatar       string                        `json:"avatar"`
	Availability map[string]schedule.DayBlocks `json:"availability"`
}

// saveFull replaces the caller's entire availability document.
func (h *Handler) saveFull(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}

	var req saveFullReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	availability, err := NormalizeAvailability(req.Availability, p.Dates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	name, avatar := h.profile(c, req.Name, req.Avatar)
	a := &Answer{
		ProjectID:    p.PublicID,
		UserID:       identity.UserDBID(c),
		Name:         name,
		Avatar:       avatar,
		Availability: availability,
		UpdatedAt:    time.Now(),
	}
	if err := h.repo.Upsert(c.Request.Context(), a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c, p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "answer": a})
}

type saveDateReq struct {
	Name        string   `json:"name"`
	Avatar      string   `json:"avatar"`
	Available   []string `json:"available"`
	Unavailable []string `json:"unavailable"`
	Undecided   []string `json:"undecided"`
}

// saveDate replaces one date's entry only; the caller's other dates keep
// their last saved value.
func (h *Handler) saveDate(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if !containsDate(p.Dates, date) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "date is not a candidate date"})
		return
	}

	var req saveDateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	blocks, err := NormalizeBlocks(schedule.DayBlocks{
		Available:   req.Available,
		Unavailable: req.Unavailable,
		Undecided:   req.Undecided,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	name, avatar := h.profile(c, req.Name, req.Avatar)
	userID := identity.UserDBID(c)
	if err := h.repo.UpsertDate(c.Request.Context(), p.PublicID, userID, name, avatar, date, blocks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c, p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) project(c *gin.Context) (*projdomain.Project, bool) {
	p, err := h.projects.GetByPublicID(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		if errors.Is(err, projdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return nil, false
	}
	return p, true
}

// profile prefers explicit body fields over the cached identity profile.
func (h *Handler) profile(c *gin.Context, name, avatar string) (string, string) {
	ctxName, ctxAvatar := identity.Profile(c)
	if strings.TrimSpace(name) == "" {
		name = ctxName
	}
	if strings.TrimSpace(avatar) == "" {
		avatar = ctxAvatar
	}
	return name, avatar
}

func (h *Handler) invalidate(c *gin.Context, projectID string) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Invalidate(c.Request.Context(), projectID); err != nil {
		log.Printf("dashboard invalidate %s: %v", projectID, err)
	}
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
