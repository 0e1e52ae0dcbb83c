package planner

import (
	"fmt"
	"time"

	"github.com/lysa05/schedule/pkg/models"
)

// Calendar owns the special-day state for one planning month. Days are stored
// only while they carry non-default state; everything else is implicitly
// normal. Pure state, no I/O.
type Calendar struct {
	year  int
	month int
	days  map[int]models.SpecialDay
}

// DayUpdate is a partial update applied to one day. Nil fields are left as
// they were; the merged result replaces the whole day.
type DayUpdate struct {
	Type          *models.DayType
	OpenTime      *string
	CloseTime     *string
	StaffOverride *int
}

// NewCalendar creates an empty calendar for the given month.
func NewCalendar(year, month int) *Calendar {
	return &Calendar{
		year:  year,
		month: month,
		days:  make(map[int]models.SpecialDay),
	}
}

// Year returns the active year.
func (c *Calendar) Year() int { return c.year }

// Month returns the active month (1-12).
func (c *Calendar) Month() int { return c.month }

// NumDays returns the number of days in the active month.
func (c *Calendar) NumDays() int {
	return time.Date(c.year, time.Month(c.month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SetPeriod switches the calendar to another month and discards all
// special-day state.
func (c *Calendar) SetPeriod(year, month int) {
	c.year = year
	c.month = month
	c.days = make(map[int]models.SpecialDay)
}

// Day returns the state of a day, or the normal default if it has none.
func (c *Calendar) Day(day int) models.SpecialDay {
	if d, ok := c.days[day]; ok {
		return d
	}
	return models.SpecialDay{Day: day, Type: models.DayNormal}
}

// SetDay merges a partial update into the day's current state. If the merged
// state is the default it is removed from the collection; otherwise it
// replaces the stored entry.
func (c *Calendar) SetDay(day int, update DayUpdate) error {
	if day < 1 || day > c.NumDays() {
		return fmt.Errorf("day %d out of range for %d-%02d", day, c.year, c.month)
	}

	merged := c.Day(day)
	if update.Type != nil {
		if !update.Type.Valid() {
			return fmt.Errorf("unknown day type %q", *update.Type)
		}
		merged.Type = *update.Type
	}
	if update.OpenTime != nil {
		merged.OpenTime = *update.OpenTime
	}
	if update.CloseTime != nil {
		merged.CloseTime = *update.CloseTime
	}
	if update.StaffOverride != nil {
		if *update.StaffOverride < 0 {
			return fmt.Errorf("staff override must be positive, got %d", *update.StaffOverride)
		}
		merged.StaffOverride = *update.StaffOverride
	}

	// Open/close overrides only make sense on short-hours days.
	if merged.Type != models.DayHolidayShort {
		merged.OpenTime = ""
		merged.CloseTime = ""
	} else {
		if merged.OpenTime != "" {
			if _, err := ParseClock(merged.OpenTime); err != nil {
				return err
			}
		}
		if merged.CloseTime != "" {
			if _, err := ParseClock(merged.CloseTime); err != nil {
				return err
			}
		}
		if merged.OpenTime != "" && merged.CloseTime != "" && merged.CloseTime <= merged.OpenTime {
			return fmt.Errorf("close time %s must be after open time %s", merged.CloseTime, merged.OpenTime)
		}
	}

	if merged.IsDefault() {
		delete(c.days, day)
	} else {
		c.days[day] = merged
	}
	return nil
}

// ClearAll resets every day back to normal.
func (c *Calendar) ClearAll() {
	c.days = make(map[int]models.SpecialDay)
}

// SetWeekendsClosed marks every Saturday and Sunday of the active month as a
// closed holiday, overwriting whatever state those days had.
func (c *Calendar) SetWeekendsClosed() {
	for day := 1; day <= c.NumDays(); day++ {
		wd := time.Date(c.year, time.Month(c.month), day, 0, 0, 0, 0, time.UTC).Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			c.days[day] = models.SpecialDay{Day: day, Type: models.DayHolidayClosed}
		}
	}
}

// Len returns how many days carry non-default state.
func (c *Calendar) Len() int { return len(c.days) }

// SpecialDays returns the non-default days ordered by day number.
func (c *Calendar) SpecialDays() []models.SpecialDay {
	out := make([]models.SpecialDay, 0, len(c.days))
	for day := 1; day <= c.NumDays(); day++ {
		if d, ok := c.days[day]; ok {
			out = append(out, d)
		}
	}
	return out
}

// EffectiveHours returns the open/close times in force on a day. A
// holiday_short day without an explicit override falls back to the store
// defaults at read time, so a later change of the defaults retroactively
// changes the day's effective hours.
func (c *Calendar) EffectiveHours(day int, defaultOpen, defaultClose string) (open, close string) {
	d := c.Day(day)
	open, close = defaultOpen, defaultClose
	if d.Type == models.DayHolidayShort {
		if d.OpenTime != "" {
			open = d.OpenTime
		}
		if d.CloseTime != "" {
			close = d.CloseTime
		}
	}
	return open, close
}
