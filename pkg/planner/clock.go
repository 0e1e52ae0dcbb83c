package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day in fractional hours (08:30 -> 8.5).
type Clock float64

// Hour returns the whole-hour part of the clock value.
func (c Clock) Hour() int { return int(c) }

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in clock time %q", s)
	}
	return Clock(float64(h) + float64(m)/60.0), nil
}

// DurationHours returns the span between two "HH:MM" times in hours.
func DurationHours(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e <= s {
		return 0, fmt.Errorf("shift end %s must be after start %s", end, start)
	}
	return float64(e - s), nil
}
