package schedule

import "sort"

// Availability is the per-user snapshot consumed by the aggregation
// pipeline: user id → date → that user's slot classifications.
type Availability map[string]map[string]DayBlocks

// ParticipationIndex maps date → slot → the sorted ids of users explicitly
// marked available at that slot.
type ParticipationIndex map[string]map[string][]string

// BuildParticipationIndex materializes the full index for the given dates
// and slot sequence. Only explicit available entries count; a user with no
// availability data contributes no membership anywhere.
func BuildParticipationIndex(dates, slots []string, byUser Availability) ParticipationIndex {
	idx := make(ParticipationIndex, len(dates))
	for _, date := range dates {
		perSlot := make(map[string][]string, len(slots))
		for _, slot := range slots {
			members := []string{}
			for userID, days := range byUser {
				if containsSlot(days[date].Available, slot) {
					members = append(members, userID)
				}
			}
			sort.Strings(members)
			perSlot[slot] = members
		}
		idx[date] = perSlot
	}
	return idx
}
