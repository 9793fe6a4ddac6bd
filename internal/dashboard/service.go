package dashboard

import (
	"context"
	"log"
	"time"

	"github.com/time-matcha/timematcha-backend/internal/answers"
	projdomain "github.com/time-matcha/timematcha-backend/internal/projects/domain"
	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

// ProjectSource resolves the project under aggregation.
type ProjectSource interface {
	GetByPublicID(ctx context.Context, publicID string) (*projdomain.Project, error)
}

// AnswerSource supplies the answer snapshot the pipeline consumes.
type AnswerSource interface {
	ListByProject(ctx context.Context, projectID string) ([]answers.Answer, error)
}

// Participant is one answering user as shown on the dashboard.
type Participant struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Snapshot is the mode-independent aggregation result for one project. It
// is what gets cached: coverage filtering is applied per request on top.
type Snapshot struct {
	ProjectID    string                            `json:"project_id"`
	Name         string                            `json:"name"`
	Status       string                            `json:"status"`
	StartTime    string                            `json:"start_time"`
	EndTime      string                            `json:"end_time"`
	Dates        []string                          `json:"dates"`
	Slots        []string                          `json:"slots"`
	Participants []Participant                     `json:"participants"`
	Total        int                               `json:"total"`
	Grouped      map[string][]schedule.Range       `json:"grouped"`
	Optimal      map[string][]schedule.TimeCount   `json:"optimal"`
	GeneratedAt  time.Time                         `json:"generated_at"`
}

// DateView is one date's dashboard section under the active mode.
type DateView struct {
	Date          string               `json:"date"`
	Ranges        []schedule.Range     `json:"ranges"`
	Matches       []schedule.Range     `json:"matches"`
	HasFull       bool                 `json:"has_full"`
	FullTimes     []schedule.TimeCount `json:"full_times"`
	MajorityTimes []schedule.TimeCount `json:"majority_times"`
}

// View is the rendered dashboard for one (project, mode, selection).
type View struct {
	ProjectID    string        `json:"project_id"`
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	Slots        []string      `json:"slots"`
	Participants []Participant `json:"participants"`
	Total        int           `json:"total"`
	Mode         schedule.Mode `json:"mode"`
	Selected     []string      `json:"selected,omitempty"`
	Dates        []DateView    `json:"dates"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

// Service runs the aggregation pipeline over a fetched snapshot. The
// pipeline itself is pure; the service only adds fetching and caching.
type Service struct {
	projects ProjectSource
	answers  AnswerSource
	cache    *Cache
}

func NewService(projects ProjectSource, answerSource AnswerSource, cache *Cache) *Service {
	return &Service{projects: projects, answers: answerSource, cache: cache}
}

// Snapshot returns the cached aggregation for a project, computing and
// caching it on a miss. Cache failures degrade to a fresh compute.
func (s *Service) Snapshot(ctx context.Context, publicID string) (*Snapshot, error) {
	if s.cache != nil {
		snap, err := s.cache.Get(ctx, publicID)
		if err != nil {
			log.Printf("dashboard cache get %s: %v", publicID, err)
		} else if snap != nil {
			return snap, nil
		}
	}

	snap, err := s.compute(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snap); err != nil {
			log.Printf("dashboard cache set %s: %v", publicID, err)
		}
	}
	return snap, nil
}

// Dashboard applies the requested coverage mode to the project snapshot.
func (s *Service) Dashboard(ctx context.Context, publicID string, mode schedule.Mode, selected []string) (*View, error) {
	snap, err := s.Snapshot(ctx, publicID)
	if err != nil {
		return nil, err
	}

	view := &View{
		ProjectID:    snap.ProjectID,
		Name:         snap.Name,
		Status:       snap.Status,
		StartTime:    snap.StartTime,
		EndTime:      snap.EndTime,
		Slots:        snap.Slots,
		Participants: snap.Participants,
		Total:        snap.Total,
		Mode:         mode,
		Selected:     selected,
		Dates:        make([]DateView, 0, len(snap.Dates)),
	}

	for _, date := range snap.Dates {
		ranges := snap.Grouped[date]
		optimal := snap.Optimal[date]
		view.Dates = append(view.Dates, DateView{
			Date:          date,
			Ranges:        ranges,
			Matches:       schedule.FilterByCoverage(ranges, snap.Total, mode, selected),
			HasFull:       schedule.HasFull(ranges, snap.Total),
			FullTimes:     schedule.FullTier(optimal, snap.Total),
			MajorityTimes: schedule.MajorityTier(optimal, snap.Total),
		})
	}
	return view, nil
}

// compute runs the full pipeline over a fresh Postgres snapshot.
func (s *Service) compute(ctx context.Context, publicID string) (*Snapshot, error) {
	p, err := s.projects.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	responses, err := s.answers.ListByProject(ctx, p.PublicID)
	if err != nil {
		return nil, err
	}

	slots := schedule.GenerateTimeSlots(p.StartTime, p.EndTime)

	byUser := make(schedule.Availability, len(responses))
	simple := make(schedule.SimpleAvailability, len(responses))
	participants := make([]Participant, 0, len(responses))
	for _, a := range responses {
		participants = append(participants, Participant{UserID: a.UserID, Name: a.Name, Avatar: a.Avatar})

		days := make(map[string]schedule.DayBlocks, len(a.Availability))
		flat := make(map[string][]string, len(a.Availability))
		for date, blocks := range a.Availability {
			days[date] = blocks
			flat[date] = blocks.Available
		}
		byUser[a.UserID] = days
		simple[a.UserID] = flat
	}

	idx := schedule.BuildParticipationIndex(p.Dates, slots, byUser)

	return &Snapshot{
		ProjectID:    p.PublicID,
		Name:         p.Name,
		Status:       p.Status,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		Dates:        p.Dates,
		Slots:        slots,
		Participants: participants,
		Total:        len(responses),
		Grouped:      schedule.GroupContiguous(p.Dates, slots, idx),
		Optimal:      schedule.OptimalTimes(p.Dates, simple),
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
