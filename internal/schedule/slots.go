// Package schedule implements the availability-aggregation pipeline:
// slot generation, per-slot status resolution, the participation index,
// contiguous-range grouping and coverage filtering. Every function is pure;
// callers fetch the data snapshot and render the derived views.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotStep is the fixed slot granularity in minutes.
const SlotStep = 30

// GenerateTimeSlots returns the ordered HH:MM slot labels from start
// (inclusive) to end (exclusive) at 30-minute increments.
//
// Degenerate input (start >= end, or either side malformed) yields an empty
// sequence: callers render "no slots" as a normal empty state, not an error.
func GenerateTimeSlots(start, end string) []string {
	hour, minute, ok := parseClock(start)
	if !ok {
		return []string{}
	}
	endHour, endMinute, ok := parseClock(end)
	if !ok {
		return []string{}
	}

	slots := []string{}
	for hour < endHour || (hour == endHour && minute < endMinute) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))

		minute += SlotStep
		if minute >= 60 {
			minute -= 60
			hour++
		}
	}
	return slots
}

// parseClock parses a 24-hour "HH:MM" string.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// ValidClock reports whether s is a well-formed 24-hour HH:MM string.
func ValidClock(s string) bool {
	_, _, ok := parseClock(s)
	return ok
}

// ClockBefore reports whether a is strictly earlier than b. Malformed input
// compares false.
func ClockBefore(a, b string) bool {
	ah, am, ok := parseClock(a)
	if !ok {
		return false
	}
	bh, bm, ok := parseClock(b)
	if !ok {
		return false
	}
	return ah < bh || (ah == bh && am < bm)
}
