package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/time-matcha/timematcha-backend/internal/projects/domain"
	"github.com/time-matcha/timematcha-backend/internal/projects/repository"
)

// Store is the slice of the project repository the handlers need.
type Store interface {
	Create(ctx context.Context, ownerID string, in repository.CreateProject) (*domain.Project, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Project, error)
	ListForUser(ctx context.Context, userID string, oldestFirst bool) ([]domain.Project, error)
	Rename(ctx context.Context, ownerID, publicID, newName string) (*domain.Project, error)
	SetStatus(ctx context.Context, ownerID, publicID, status string) (*domain.Project, error)
	AddDate(ctx context.Context, ownerID, publicID, date string) (*domain.Project, error)
	RemoveDate(ctx context.Context, ownerID, publicID, date string) (*domain.Project, error)
	SoftDelete(ctx context.Context, ownerID, publicID string) (bool, error)
}

// Notifier invalidates derived views after a project mutation.
type Notifier interface {
	Invalidate(ctx context.Context, projectID string) error
}

type Handler struct {
	store    Store
	notifier Notifier
}

func New(store Store, notifier Notifier) *Handler {
	return &Handler{store: store, notifier: notifier}
}

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.get)
	rg.PATCH("/:public_id", h.update)
	rg.POST("/:public_id/dates", h.addDate)
	rg.DELETE("/:public_id/dates/:date", h.removeDate)
	rg.DELETE("/:public_id", h.delete)
}

const dateLayout = "2006-01-02"

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
