package schedule

// Status is the resolved state of a (user, date, slot) triple.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusUndecided   Status = "undecided"
	StatusNone        Status = "none"
)

// DayBlocks holds one participant's slot classifications for a single date.
// The three lists should be pairwise disjoint but nothing enforces that at
// write time; resolver precedence is the conflict rule.
type DayBlocks struct {
	Available   []string `json:"available"`
	Unavailable []string `json:"unavailable"`
	Undecided   []string `json:"undecided"`
}

// Resolve classifies a slot under the three-state model. Precedence:
// unavailable > undecided, and anything listed in neither is available.
func Resolve(slot string, blocks DayBlocks) Status {
	if containsSlot(blocks.Unavailable, slot) {
		return StatusUnavailable
	}
	if containsSlot(blocks.Undecided, slot) {
		return StatusUndecided
	}
	return StatusAvailable
}

// ResolveExplicit classifies a slot under the four-state model used by the
// manual-entry grid. Precedence: available > unavailable > undecided, and a
// slot absent from all three lists is none. The participation index counts
// only explicit available entries.
func ResolveExplicit(slot string, blocks DayBlocks) Status {
	if containsSlot(blocks.Available, slot) {
		return StatusAvailable
	}
	if containsSlot(blocks.Unavailable, slot) {
		return StatusUnavailable
	}
	if containsSlot(blocks.Undecided, slot) {
		return StatusUndecided
	}
	return StatusNone
}

func containsSlot(list []string, slot string) bool {
	for _, s := range list {
		if s == slot {
			return true
		}
	}
	return false
}
