package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapCounts(t *testing.T) {
	byUser := SimpleAvailability{
		"sakura": {"2026-09-01": {"09:00", "10:00", "11:00"}},
		"matcha": {"2026-09-01": {"10:00", "11:00"}},
		"midori": {"2026-09-01": {"11:00"}, "2026-09-02": {"18:00"}},
	}

	counts := OverlapCounts("2026-09-01", byUser)
	assert.Equal(t, 1, counts["09:00"])
	assert.Equal(t, 2, counts["10:00"])
	assert.Equal(t, 3, counts["11:00"])
	assert.NotContains(t, counts, "18:00")
}

func TestOptimalTimes(t *testing.T) {
	dates := []string{"2026-09-01", "2026-09-02"}
	byUser := SimpleAvailability{
		"sakura": {"2026-09-01": {"09:00", "10:00", "11:00"}},
		"matcha": {"2026-09-01": {"10:00", "11:00"}},
		"midori": {"2026-09-01": {"11:00"}},
	}

	got := OptimalTimes(dates, byUser)

	t.Run("sorted descending by count, ties by time", func(t *testing.T) {
		assert.Equal(t, []TimeCount{
			{Time: "11:00", Count: 3},
			{Time: "10:00", Count: 2},
			{Time: "09:00", Count: 1},
		}, got["2026-09-01"])
	})

	t.Run("date with no availability is empty", func(t *testing.T) {
		assert.Empty(t, got["2026-09-02"])
	})

	t.Run("tiers", func(t *testing.T) {
		items := got["2026-09-01"]
		assert.Equal(t, []TimeCount{{Time: "11:00", Count: 3}}, FullTier(items, 3))
		assert.Equal(t, []TimeCount{{Time: "10:00", Count: 2}}, MajorityTier(items, 3))
	})

	t.Run("majority excludes full and half-or-less", func(t *testing.T) {
		items := []TimeCount{
			{Time: "09:00", Count: 4},
			{Time: "10:00", Count: 3},
			{Time: "11:00", Count: 2},
		}
		assert.Equal(t, []TimeCount{{Time: "10:00", Count: 3}}, MajorityTier(items, 4))
	})
}
