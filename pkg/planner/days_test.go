package planner

import (
	"testing"

	"github.com/lysa05/schedule/pkg/models"
)

func dayType(t models.DayType) *models.DayType { return &t }

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestSetDayRoundTrip(t *testing.T) {
	cal := NewCalendar(2025, 12)

	if err := cal.SetDay(15, DayUpdate{Type: dayType(models.DayBusy)}); err != nil {
		t.Fatalf("SetDay busy: %v", err)
	}
	if cal.Len() != 1 {
		t.Errorf("Expected 1 special day, got %d", cal.Len())
	}
	if got := cal.Day(15).Type; got != models.DayBusy {
		t.Errorf("Expected day 15 to be busy, got %s", got)
	}

	// Reverting to normal must remove the entry entirely
	if err := cal.SetDay(15, DayUpdate{Type: dayType(models.DayNormal)}); err != nil {
		t.Fatalf("SetDay normal: %v", err)
	}
	if cal.Len() != 0 {
		t.Errorf("Expected collection to be empty after revert, got %d entries", cal.Len())
	}
	if got := cal.Day(15).Type; got != models.DayNormal {
		t.Errorf("Expected implicit normal for absent day, got %s", got)
	}
}

func TestSetDayShortHours(t *testing.T) {
	cal := NewCalendar(2025, 12)

	err := cal.SetDay(24, DayUpdate{
		Type:          dayType(models.DayHolidayShort),
		OpenTime:      strPtr("08:00"),
		CloseTime:     strPtr("12:00"),
		StaffOverride: intPtr(2),
	})
	if err != nil {
		t.Fatalf("SetDay holiday_short: %v", err)
	}

	d := cal.Day(24)
	if d.OpenTime != "08:00" || d.CloseTime != "12:00" || d.StaffOverride != 2 {
		t.Errorf("Unexpected day 24 state: %+v", d)
	}
}

func TestSetDayRejectsInvertedHours(t *testing.T) {
	cal := NewCalendar(2025, 12)

	err := cal.SetDay(24, DayUpdate{
		Type:      dayType(models.DayHolidayShort),
		OpenTime:  strPtr("14:00"),
		CloseTime: strPtr("12:00"),
	})
	if err == nil {
		t.Error("Expected error for close before open")
	}
}

func TestSetDayDropsHoursOnTypeChange(t *testing.T) {
	cal := NewCalendar(2025, 12)

	_ = cal.SetDay(24, DayUpdate{
		Type:      dayType(models.DayHolidayShort),
		CloseTime: strPtr("12:00"),
	})
	if err := cal.SetDay(24, DayUpdate{Type: dayType(models.DayBusy)}); err != nil {
		t.Fatalf("SetDay busy: %v", err)
	}
	d := cal.Day(24)
	if d.CloseTime != "" {
		t.Errorf("Expected close override dropped after leaving holiday_short, got %q", d.CloseTime)
	}
}

func TestSetDayOutOfRange(t *testing.T) {
	cal := NewCalendar(2025, 11) // November has 30 days
	if err := cal.SetDay(31, DayUpdate{Type: dayType(models.DayBusy)}); err == nil {
		t.Error("Expected error for day 31 in a 30-day month")
	}
}

func TestSetWeekendsClosed(t *testing.T) {
	cal := NewCalendar(2025, 12) // December 2025 starts on a Monday

	// Pre-existing state on a Saturday must be overwritten
	_ = cal.SetDay(6, DayUpdate{Type: dayType(models.DayBusy)})

	cal.SetWeekendsClosed()

	// December 2025: Saturdays 6,13,20,27 and Sundays 7,14,21,28
	for _, day := range []int{6, 7, 13, 14, 20, 21, 27, 28} {
		if got := cal.Day(day).Type; got != models.DayHolidayClosed {
			t.Errorf("Expected day %d closed, got %s", day, got)
		}
	}
	if cal.Len() != 8 {
		t.Errorf("Expected 8 closed weekend days, got %d", cal.Len())
	}
	if got := cal.Day(8).Type; got != models.DayNormal {
		t.Errorf("Expected Monday the 8th untouched, got %s", got)
	}
}

func TestClearAllAndPeriodReset(t *testing.T) {
	cal := NewCalendar(2025, 12)
	_ = cal.SetDay(1, DayUpdate{Type: dayType(models.DayBusy)})
	cal.ClearAll()
	if cal.Len() != 0 {
		t.Errorf("Expected empty calendar after ClearAll, got %d", cal.Len())
	}

	_ = cal.SetDay(2, DayUpdate{Type: dayType(models.DayHolidayOpen)})
	cal.SetPeriod(2026, 1)
	if cal.Len() != 0 {
		t.Errorf("Expected empty calendar after period change, got %d", cal.Len())
	}
	if cal.Year() != 2026 || cal.Month() != 1 {
		t.Errorf("Unexpected period %d-%d", cal.Year(), cal.Month())
	}
}

func TestEffectiveHoursFallback(t *testing.T) {
	cal := NewCalendar(2025, 12)

	// Short day without explicit times falls back to the store default at
	// read time
	_ = cal.SetDay(31, DayUpdate{Type: dayType(models.DayHolidayShort)})

	open, close := cal.EffectiveHours(31, "08:30", "21:00")
	if open != "08:30" || close != "21:00" {
		t.Errorf("Expected default hours, got %s-%s", open, close)
	}

	// A changed default is picked up retroactively
	open, close = cal.EffectiveHours(31, "09:00", "20:00")
	if open != "09:00" || close != "20:00" {
		t.Errorf("Expected new defaults, got %s-%s", open, close)
	}

	_ = cal.SetDay(31, DayUpdate{CloseTime: strPtr("17:00")})
	open, close = cal.EffectiveHours(31, "08:30", "21:00")
	if open != "08:30" || close != "17:00" {
		t.Errorf("Expected explicit close override, got %s-%s", open, close)
	}
}

func TestNumDays(t *testing.T) {
	if got := NewCalendar(2025, 12).NumDays(); got != 31 {
		t.Errorf("Expected 31 days in December, got %d", got)
	}
	if got := NewCalendar(2024, 2).NumDays(); got != 29 {
		t.Errorf("Expected 29 days in February 2024, got %d", got)
	}
}
