package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildParticipationIndex(t *testing.T) {
	dates := []string{"2026-09-01", "2026-09-02"}
	slots := []string{"09:00", "09:30"}

	byUser := Availability{
		"bob": {
			"2026-09-01": DayBlocks{Available: []string{"09:00", "09:30"}},
		},
		"alice": {
			"2026-09-01": DayBlocks{Available: []string{"09:00"}, Unavailable: []string{"09:30"}},
			"2026-09-02": DayBlocks{Available: []string{"09:30"}},
		},
	}

	idx := BuildParticipationIndex(dates, slots, byUser)

	assert.Equal(t, []string{"alice", "bob"}, idx["2026-09-01"]["09:00"], "members are sorted")
	assert.Equal(t, []string{"bob"}, idx["2026-09-01"]["09:30"])
	assert.Empty(t, idx["2026-09-02"]["09:00"])
	assert.Equal(t, []string{"alice"}, idx["2026-09-02"]["09:30"])

	t.Run("only explicit available entries count", func(t *testing.T) {
		// carol answered nothing: under the three-state display default she
		// would read as available, but the index treats her as absent.
		byUser["carol"] = map[string]DayBlocks{}
		idx := BuildParticipationIndex(dates, slots, byUser)
		assert.NotContains(t, idx["2026-09-01"]["09:00"], "carol")
		delete(byUser, "carol")
	})

	t.Run("empty dates produce an empty index", func(t *testing.T) {
		assert.Empty(t, BuildParticipationIndex(nil, slots, byUser))
	})

	t.Run("every date and slot is materialized", func(t *testing.T) {
		idx := BuildParticipationIndex(dates, slots, Availability{})
		for _, date := range dates {
			assert.Len(t, idx[date], len(slots))
		}
	})
}
