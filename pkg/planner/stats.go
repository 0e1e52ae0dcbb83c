package planner

import (
	"github.com/lysa05/schedule/pkg/models"
)

// Recompute derives per-employee statistics from the schedule, the roster
// and the calendar. It is pure: the same inputs always produce the same
// output, in roster order, so a schedule edited by hand stays comparable to
// solver output without another server round-trip.
func Recompute(schedule models.Schedule, roster *Roster, cal *Calendar) []models.EmployeeStat {
	employees := roster.Employees()
	stats := make([]models.EmployeeStat, 0, len(employees))

	for _, emp := range employees {
		stat := models.EmployeeStat{
			Name:   emp.Name,
			Target: emp.TargetHours,
		}

		for day := 1; day <= cal.NumDays(); day++ {
			shift, ok := schedule[day][emp.Name]
			if !ok {
				continue
			}
			stat.Worked += shift.Duration
			switch classifyShift(shift) {
			case models.ShiftOpen:
				stat.Opens++
			case models.ShiftClose:
				stat.Closes++
			default:
				stat.Middle++
			}
		}

		stat.PaidOff = paidOffHours(emp, cal)
		stat.Total = stat.Worked + stat.PaidOff
		stat.Diff = stat.Total - stat.Target
		stats = append(stats, stat)
	}
	return stats
}

// classifyShift buckets a shift as an open, a close, or a middle. Manual
// shifts carry no solver type, so they are inferred from clock time alone:
// starting by 09:xx counts as an open, ending at 20:00 or later as a close.
// The inference deliberately ignores the store's actual hours; changing it
// would silently change reported fairness statistics.
func classifyShift(shift models.Shift) models.ShiftType {
	switch shift.Type {
	case models.ShiftOpen, models.ShiftFixed:
		return models.ShiftOpen
	case models.ShiftClose:
		return models.ShiftClose
	case models.ShiftFlex:
		return models.ShiftFlex
	case models.ShiftManual:
		if start, err := ParseClock(shift.Start); err == nil && start.Hour() <= 9 {
			return models.ShiftOpen
		}
		if end, err := ParseClock(shift.End); err == nil && end.Hour() >= 20 {
			return models.ShiftClose
		}
		return models.ShiftFlex
	default:
		return models.ShiftFlex
	}
}

// paidOffHours credits the flat daily amount for every vacation day and
// every closed holiday, each day at most once even when both apply.
func paidOffHours(emp models.Employee, cal *Calendar) float64 {
	credit := PaidHoursCredit(emp.ContractFte)
	paid := make(map[int]bool)

	for day := 1; day <= cal.NumDays(); day++ {
		if cal.Day(day).Type == models.DayHolidayClosed {
			paid[day] = true
		}
	}
	for _, day := range emp.VacationDays {
		if day >= 1 && day <= cal.NumDays() {
			paid[day] = true
		}
	}
	return float64(len(paid)) * credit
}
