package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by WithUser.
const (
	CtxAnonID     = "anon_id"
	CtxUserDBID   = "user_db_id"
	CtxUserName   = "user_name"
	CtxUserAvatar = "user_avatar"
)

// WithUser resolves the caller's anonymous identity from the X-Anon-Id
// header, ensures the backing user row exists, and injects the identity
// into the request context. The aggregation core never sees headers or
// storage; it receives explicit user ids from here on.
func WithUser(repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		anonID := strings.TrimSpace(c.GetHeader("X-Anon-Id"))
		if anonID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "X-Anon-Id header required"})
			c.Abort()
			return
		}

		u, err := repo.EnsureUser(c.Request.Context(), UpsertUser{
			AnonID: anonID,
			Name:   c.GetHeader("X-User-Name"),
			Avatar: c.GetHeader("X-User-Avatar"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxAnonID, anonID)
		c.Set(CtxUserDBID, u.ID)
		c.Set(CtxUserName, u.Name)
		c.Set(CtxUserAvatar, u.Avatar)
		c.Next()
	}
}

// UserDBID extracts the database user id injected by WithUser.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}

// Profile extracts the cached display profile injected by WithUser.
func Profile(c *gin.Context) (name, avatar string) {
	return c.GetString(CtxUserName), c.GetString(CtxUserAvatar)
}
