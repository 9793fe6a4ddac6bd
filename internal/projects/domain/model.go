package domain

import "time"

// Project represents one scheduling project: the candidate dates, the daily
// time window, and its lifecycle status. It is storage-agnostic and used
// across repository and HTTP layers.
type Project struct {
	PublicID  string    `json:"public_id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Dates     []string  `json:"dates"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lifecycle status values
const (
	StatusAdjusting = "adjusting"
	StatusConfirmed = "confirmed"
)

func ValidStatus(s string) bool {
	return s == StatusAdjusting || s == StatusConfirmed
}
