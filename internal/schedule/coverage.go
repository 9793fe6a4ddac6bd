package schedule

import "math"

// Mode selects the coverage criterion applied to grouped ranges.
type Mode string

const (
	// ModeFull keeps ranges where every participant is a member.
	ModeFull Mode = "full"
	// ModeMostly keeps ranges covering at least 80% of participants.
	ModeMostly Mode = "mostly"
	// ModeCustom keeps ranges containing every id in an explicit selection.
	ModeCustom Mode = "custom"
)

// ValidMode reports whether m is a known selection mode.
func ValidMode(m Mode) bool {
	return m == ModeFull || m == ModeMostly || m == ModeCustom
}

// FilterByCoverage keeps the ranges meeting the mode's criterion. An empty
// result is a normal "no suitable slot" state. For ModeCustom the selection
// is a subset-containment test: unselected users may also be present. An
// empty custom selection, like an unknown mode, matches nothing.
func FilterByCoverage(ranges []Range, total int, mode Mode, custom []string) []Range {
	out := []Range{}
	for _, r := range ranges {
		switch mode {
		case ModeFull:
			if len(r.Members) == total {
				out = append(out, r)
			}
		case ModeMostly:
			if len(r.Members) >= mostlyThreshold(total) {
				out = append(out, r)
			}
		case ModeCustom:
			if len(custom) > 0 && containsAll(r.Members, custom) {
				out = append(out, r)
			}
		}
	}
	return out
}

// HasFull reports whether any range has full membership. Exposed for
// date-level badges independent of the active mode.
func HasFull(ranges []Range, total int) bool {
	if total == 0 {
		return false
	}
	for _, r := range ranges {
		if len(r.Members) == total {
			return true
		}
	}
	return false
}

func mostlyThreshold(total int) int {
	return int(math.Ceil(float64(total) * 0.8))
}

func containsAll(members, wanted []string) bool {
	for _, id := range wanted {
		if !containsSlot(members, id) {
			return false
		}
	}
	return true
}
