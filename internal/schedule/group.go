package schedule

import (
	"sort"
	"strings"
)

// Range is a run of consecutive slots sharing one participant set.
type Range struct {
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Members []string `json:"members"`
}

// GroupContiguous walks each date's slots in generation order and merges
// consecutive slots whose participant sets are identical. Set equality is
// order-insensitive: members are sorted and joined into a key before
// comparing.
//
// Boundary rules, preserved from the original views:
//   - a range closed mid-scan ends at the last slot that shared its set;
//   - the final open range always ends at the day's last generated slot;
//   - ranges with no members are dropped ("nobody available" never
//     surfaces as a suggestion).
func GroupContiguous(dates, slots []string, idx ParticipationIndex) map[string][]Range {
	out := make(map[string][]Range, len(dates))
	for _, date := range dates {
		out[date] = groupDate(date, slots, idx)
	}
	return out
}

func groupDate(date string, slots []string, idx ParticipationIndex) []Range {
	ranges := []Range{}
	if len(slots) == 0 {
		return ranges
	}

	var open *Range
	prevKey := ""
	for i, slot := range slots {
		members := canonicalMembers(idx[date][slot])
		key := strings.Join(members, ",")
		if i == 0 || key != prevKey {
			if open != nil && len(open.Members) > 0 {
				open.End = slots[i-1]
				ranges = append(ranges, *open)
			}
			open = &Range{Start: slot, Members: members}
			prevKey = key
		}
	}

	if open != nil && len(open.Members) > 0 {
		open.End = slots[len(slots)-1]
		ranges = append(ranges, *open)
	}
	return ranges
}

func canonicalMembers(members []string) []string {
	out := make([]string, len(members))
	copy(out, members)
	sort.Strings(out)
	return out
}
