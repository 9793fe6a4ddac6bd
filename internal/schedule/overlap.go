package schedule

import "sort"

// TimeCount pairs a time label with the number of users available then.
type TimeCount struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// SimpleAvailability is the legacy flat model: user id → date → the time
// labels that user listed as available. Any listed time counts; the
// three-state resolution does not apply on this path.
type SimpleAvailability map[string]map[string][]string

// OverlapCounts tallies, for one date, how many distinct users list each
// time label.
func OverlapCounts(date string, byUser SimpleAvailability) map[string]int {
	counts := map[string]int{}
	for _, days := range byUser {
		for _, t := range days[date] {
			counts[t]++
		}
	}
	return counts
}

// OptimalTimes produces the legacy per-date suggestion list: every time
// label with a non-zero count, sorted by count descending (ties broken by
// time label so repeated runs agree). No range grouping happens here; each
// qualifying time stands alone.
func OptimalTimes(dates []string, byUser SimpleAvailability) map[string][]TimeCount {
	out := make(map[string][]TimeCount, len(dates))
	for _, date := range dates {
		counts := OverlapCounts(date, byUser)
		items := make([]TimeCount, 0, len(counts))
		for t, n := range counts {
			if n > 0 {
				items = append(items, TimeCount{Time: t, Count: n})
			}
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Count != items[j].Count {
				return items[i].Count > items[j].Count
			}
			return items[i].Time < items[j].Time
		})
		out[date] = items
	}
	return out
}

// FullTier keeps the entries where every answering user is available.
func FullTier(items []TimeCount, total int) []TimeCount {
	out := []TimeCount{}
	for _, it := range items {
		if total > 0 && it.Count == total {
			out = append(out, it)
		}
	}
	return out
}

// MajorityTier keeps the entries where more than half, but not all, of the
// answering users are available.
func MajorityTier(items []TimeCount, total int) []TimeCount {
	out := []TimeCount{}
	for _, it := range items {
		if it.Count < total && float64(it.Count) > float64(total)/2 {
			out = append(out, it)
		}
	}
	return out
}
