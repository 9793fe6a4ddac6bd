package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

func TestNormalizeBlocksDeduplicates(t *testing.T) {
	got, err := NormalizeBlocks(schedule.DayBlocks{
		Available:   []string{"10:00", "10:30", "10:00"},
		Unavailable: []string{"11:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, got.Available)
	assert.Equal(t, []string{"11:00"}, got.Unavailable)
	assert.Empty(t, got.Undecided)
}

func TestNormalizeBlocksRejectsBadSlot(t *testing.T) {
	_, err := NormalizeBlocks(schedule.DayBlocks{Available: []string{"25:00"}})
	assert.Error(t, err)

	_, err = NormalizeBlocks(schedule.DayBlocks{Undecided: []string{"not-a-time"}})
	assert.Error(t, err)
}

func TestNormalizeBlocksKeepsCrossListConflicts(t *testing.T) {
	// The same slot in two lists is legal input; the resolver settles it.
	got, err := NormalizeBlocks(schedule.DayBlocks{
		Available:   []string{"10:00"},
		Unavailable: []string{"10:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, got.Available)
	assert.Equal(t, []string{"10:00"}, got.Unavailable)
}

func TestNormalizeAvailability(t *testing.T) {
	dates := []string{"2026-09-01", "2026-09-02"}

	got, err := NormalizeAvailability(map[string]schedule.DayBlocks{
		"2026-09-01": {Available: []string{"10:00", "10:00"}},
	}, dates)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, got["2026-09-01"].Available)
}

func TestNormalizeAvailabilityRejectsNonCandidateDate(t *testing.T) {
	_, err := NormalizeAvailability(map[string]schedule.DayBlocks{
		"2026-12-25": {Available: []string{"10:00"}},
	}, []string{"2026-09-01"})
	assert.ErrorContains(t, err, "not a candidate date")
}

func TestNormalizeAvailabilityRejectsMalformedDate(t *testing.T) {
	_, err := NormalizeAvailability(map[string]schedule.DayBlocks{
		"september 1st": {},
	}, []string{"2026-09-01"})
	assert.ErrorContains(t, err, "invalid date")
}
