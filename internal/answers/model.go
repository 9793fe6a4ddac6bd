package answers

import (
	"errors"
	"time"

	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

// Answer is one participant's response to a project: display profile plus
// the per-date slot classifications. Exactly one row exists per
// (project, user) pair; saves are upserts on that composite key.
type Answer struct {
	ProjectID    string                        `json:"project_id"`
	UserID       string                        `json:"user_id"`
	Name         string                        `json:"name"`
	Avatar       string                        `json:"avatar"`
	Availability map[string]schedule.DayBlocks `json:"availability"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

var ErrNotFound = errors.New("answer not found")
