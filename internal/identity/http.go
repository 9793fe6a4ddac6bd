package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	repo *Repo
}

// Register attaches the identity route. It sits outside the WithUser
// middleware so a fresh browser can mint its first anonymous id.
func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}
	rg.POST("", h.ensure)
}

type ensureReq struct {
	AnonID string `json:"anon_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ensure mints an anonymous id when the client has none and upserts the
// display profile either way.
func (h *Handler) ensure(c *gin.Context) {
	var req ensureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	anonID := strings.TrimSpace(req.AnonID)
	if anonID == "" {
		anonID = uuid.New().String()
	}

	u, err := h.repo.EnsureUser(c.Request.Context(), UpsertUser{
		AnonID: anonID,
		Name:   strings.TrimSpace(req.Name),
		Avatar: strings.TrimSpace(req.Avatar),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "identity": u})
}
