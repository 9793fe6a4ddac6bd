package answers

import (
	"fmt"
	"time"

	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

const dateLayout = "2006-01-02"

// NormalizeBlocks deduplicates each list while preserving order and rejects
// malformed slot labels. A slot appearing in more than one list is left
// alone: resolver precedence, not validation, settles such conflicts.
func NormalizeBlocks(b schedule.DayBlocks) (schedule.DayBlocks, error) {
	available, err := normalizeSlots(b.Available)
	if err != nil {
		return schedule.DayBlocks{}, err
	}
	unavailable, err := normalizeSlots(b.Unavailable)
	if err != nil {
		return schedule.DayBlocks{}, err
	}
	undecided, err := normalizeSlots(b.Undecided)
	if err != nil {
		return schedule.DayBlocks{}, err
	}
	return schedule.DayBlocks{
		Available:   available,
		Unavailable: unavailable,
		Undecided:   undecided,
	}, nil
}

// NormalizeAvailability validates a full availability document against the
// project's candidate dates.
func NormalizeAvailability(av map[string]schedule.DayBlocks, projectDates []string) (map[string]schedule.DayBlocks, error) {
	allowed := make(map[string]bool, len(projectDates))
	for _, d := range projectDates {
		allowed[d] = true
	}

	out := make(map[string]schedule.DayBlocks, len(av))
	for date, blocks := range av {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date %q", date)
		}
		if !allowed[date] {
			return nil, fmt.Errorf("date %q is not a candidate date", date)
		}
		normalized, err := NormalizeBlocks(blocks)
		if err != nil {
			return nil, fmt.Errorf("date %q: %w", date, err)
		}
		out[date] = normalized
	}
	return out, nil
}

func normalizeSlots(slots []string) ([]string, error) {
	out := make([]string, 0, len(slots))
	seen := map[string]bool{}
	for _, s := range slots {
		if !schedule.ValidClock(s) {
			return nil, fmt.Errorf("invalid slot %q", s)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}
