package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the full pipeline twice over the same snapshot and checks the
// derived structures agree exactly: the computation is pure, so nothing may
// depend on map iteration order or shared state.
func TestPipelineIdempotence(t *testing.T) {
	dates := []string{"2026-09-01", "2026-09-02"}
	byUser := Availability{
		"u3": {
			"2026-09-01": DayBlocks{Available: []string{"09:00", "09:30", "10:00"}},
			"2026-09-02": DayBlocks{Available: []string{"13:00"}},
		},
		"u1": {
			"2026-09-01": DayBlocks{Available: []string{"09:30", "10:00"}, Undecided: []string{"09:00"}},
		},
		"u2": {
			"2026-09-01": DayBlocks{Available: []string{"10:00"}, Unavailable: []string{"09:00", "09:30"}},
			"2026-09-02": DayBlocks{Available: []string{"13:00", "13:30"}},
		},
	}

	run := func() map[string][]Range {
		slots := GenerateTimeSlots("09:00", "14:00")
		idx := BuildParticipationIndex(dates, slots, byUser)
		return GroupContiguous(dates, slots, idx)
	}

	first := run()
	second := run()
	require.Equal(t, first, second)

	for _, date := range dates {
		filtered1 := FilterByCoverage(first[date], 3, ModeMostly, nil)
		filtered2 := FilterByCoverage(second[date], 3, ModeMostly, nil)
		assert.Equal(t, filtered1, filtered2)
	}
}

// End-to-end shape check over a realistic snapshot.
func TestPipelineEndToEnd(t *testing.T) {
	dates := []string{"2026-09-01"}
	slots := GenerateTimeSlots("10:00", "11:30")
	require.Equal(t, []string{"10:00", "10:30", "11:00"}, slots)

	byUser := Availability{
		"A": {"2026-09-01": DayBlocks{Available: []string{"10:00", "10:30", "11:00"}}},
		"B": {"2026-09-01": DayBlocks{Available: []string{"10:00", "10:30"}}},
	}

	idx := BuildParticipationIndex(dates, slots, byUser)
	grouped := GroupContiguous(dates, slots, idx)

	require.Equal(t, []Range{
		{Start: "10:00", End: "10:30", Members: []string{"A", "B"}},
		{Start: "11:00", End: "11:00", Members: []string{"A"}},
	}, grouped["2026-09-01"])

	assert.True(t, HasFull(grouped["2026-09-01"], 2))
	assert.Equal(t, grouped["2026-09-01"][:1], FilterByCoverage(grouped["2026-09-01"], 2, ModeFull, nil))
}
