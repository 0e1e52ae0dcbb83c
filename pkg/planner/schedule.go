package planner

import (
	"fmt"
	"strconv"

	"github.com/lysa05/schedule/pkg/models"
)

// ScheduleStore holds the current assignment: the solver's result, possibly
// overwritten entry by entry with manual edits.
type ScheduleStore struct {
	days models.Schedule
}

// NewScheduleStore creates an empty store.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{days: make(models.Schedule)}
}

// Load replaces the contents with a solver schedule, whose day keys arrive
// as strings.
func (s *ScheduleStore) Load(schedule map[string]map[string]models.Shift) error {
	days := make(models.Schedule, len(schedule))
	for dayStr, assignments := range schedule {
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			return fmt.Errorf("invalid schedule day key %q", dayStr)
		}
		if len(assignments) == 0 {
			continue
		}
		entry := make(map[string]models.Shift, len(assignments))
		for name, shift := range assignments {
			entry[name] = shift
		}
		days[day] = entry
	}
	s.days = days
	return nil
}

// Clear empties the store.
func (s *ScheduleStore) Clear() {
	s.days = make(models.Schedule)
}

// Shift returns one employee's assignment on one day.
func (s *ScheduleStore) Shift(day int, name string) (models.Shift, bool) {
	sh, ok := s.days[day][name]
	return sh, ok
}

// SetShift overrides one entry. A nil shift deletes the entry; a non-nil
// shift is tagged MANUAL and its duration re-derived from its clock times.
func (s *ScheduleStore) SetShift(day int, name string, shift *models.Shift) error {
	if shift == nil {
		if entry, ok := s.days[day]; ok {
			delete(entry, name)
			if len(entry) == 0 {
				delete(s.days, day)
			}
		}
		return nil
	}

	duration, err := DurationHours(shift.Start, shift.End)
	if err != nil {
		return err
	}
	set := *shift
	set.Type = models.ShiftManual
	set.Duration = duration

	entry, ok := s.days[day]
	if !ok {
		entry = make(map[string]models.Shift)
		s.days[day] = entry
	}
	entry[name] = set
	return nil
}

// Len returns the number of days with at least one assignment.
func (s *ScheduleStore) Len() int { return len(s.days) }

// Snapshot returns a deep copy of the schedule.
func (s *ScheduleStore) Snapshot() models.Schedule {
	out := make(models.Schedule, len(s.days))
	for day, assignments := range s.days {
		entry := make(map[string]models.Shift, len(assignments))
		for name, shift := range assignments {
			entry[name] = shift
		}
		out[day] = entry
	}
	return out
}
