package planner

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lysa05/schedule/pkg/models"
)

// AvailabilityKind selects which availability set a day belongs to.
type AvailabilityKind string

const (
	AvailabilityUnavailable AvailabilityKind = "unavailable"
	AvailabilityVacation    AvailabilityKind = "vacation"
	AvailabilityNone        AvailabilityKind = "none"
)

// EmployeeUpdate is a partial update for one roster entry. A ContractFte
// change recomputes the target hours as a side effect.
type EmployeeUpdate struct {
	Name        *string
	Role        *models.Role
	ContractFte *float64
}

// Roster owns the employee list and derives paid target hours from the
// fraction-based contract model.
type Roster struct {
	fulltimeHours float64
	nextID        int
	employees     []*models.Employee
}

// NewRoster creates an empty roster with the given full-time monthly hours.
func NewRoster(fulltimeHours float64) *Roster {
	return &Roster{fulltimeHours: fulltimeHours, nextID: 1}
}

// TargetHours derives the paid hours expected of a contract fraction.
func TargetHours(fulltimeHours, fte float64) float64 {
	return math.Round(fulltimeHours * fte)
}

// PaidHoursCredit is the flat daily credit paid for a vacation or closed
// holiday day: 8h for full-time, 6h from 0.75 FTE, 4h below.
func PaidHoursCredit(fte float64) float64 {
	switch {
	case fte >= 1.0:
		return 8.0
	case fte >= 0.75:
		return 6.0
	default:
		return 4.0
	}
}

// FulltimeHours returns the configured full-time monthly hours.
func (r *Roster) FulltimeHours() float64 { return r.fulltimeHours }

// SetFulltimeHours changes the full-time hours and re-derives every target.
func (r *Roster) SetFulltimeHours(h float64) {
	r.fulltimeHours = h
	for _, e := range r.employees {
		e.TargetHours = TargetHours(h, e.ContractFte)
	}
}

// Add appends a fresh employee: assistant role, full-time contract, empty
// availability.
func (r *Roster) Add() models.Employee {
	e := &models.Employee{
		ID:              strconv.Itoa(r.nextID),
		Role:            models.RoleAssistant,
		ContractFte:     1.0,
		TargetHours:     TargetHours(r.fulltimeHours, 1.0),
		UnavailableDays: []int{},
		VacationDays:    []int{},
	}
	r.nextID++
	r.employees = append(r.employees, e)
	return *e
}

// Seed replaces the roster contents from a loaded configuration, assigning
// fresh ids and re-deriving targets. The availability slices are deep-copied
// so later edits never write back into the source configuration, and a day
// listed in both sets stays only in the vacation set.
func (r *Roster) Seed(employees []models.Employee) {
	r.employees = nil
	r.nextID = 1
	for _, src := range employees {
		e := src
		e.ID = strconv.Itoa(r.nextID)
		r.nextID++
		if e.Role == "" {
			e.Role = models.RoleAssistant
		}
		if e.ContractFte <= 0 || e.ContractFte > 1.0 {
			e.ContractFte = 1.0
		}
		e.TargetHours = TargetHours(r.fulltimeHours, e.ContractFte)

		e.VacationDays = append([]int{}, src.VacationDays...)
		vacation := make(map[int]bool, len(e.VacationDays))
		for _, d := range e.VacationDays {
			vacation[d] = true
		}
		e.UnavailableDays = make([]int, 0, len(src.UnavailableDays))
		for _, d := range src.UnavailableDays {
			if !vacation[d] {
				e.UnavailableDays = append(e.UnavailableDays, d)
			}
		}

		r.employees = append(r.employees, &e)
	}
}

func (r *Roster) find(id string) (*models.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no employee with id %q", id)
}

// Get returns a copy of one roster entry.
func (r *Roster) Get(id string) (models.Employee, error) {
	e, err := r.find(id)
	if err != nil {
		return models.Employee{}, err
	}
	return *e, nil
}

// Remove deletes an employee from the roster.
func (r *Roster) Remove(id string) error {
	for i, e := range r.employees {
		if e.ID == id {
			r.employees = append(r.employees[:i], r.employees[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no employee with id %q", id)
}

// Update applies a partial update. Changing the contract fraction re-derives
// the target hours.
func (r *Roster) Update(id string, u EmployeeUpdate) error {
	e, err := r.find(id)
	if err != nil {
		return err
	}
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Role != nil {
		if !u.Role.Valid() {
			return fmt.Errorf("unknown role %q", *u.Role)
		}
		e.Role = *u.Role
	}
	if u.ContractFte != nil {
		fte := *u.ContractFte
		if fte <= 0 || fte > 1.0 {
			return fmt.Errorf("contract fte must be in (0, 1], got %v", fte)
		}
		e.ContractFte = fte
		e.TargetHours = TargetHours(r.fulltimeHours, fte)
	}
	return nil
}

// SetAvailability moves a day between the unavailable and vacation sets. The
// day is removed from both sets first, then added to the requested one, so
// the two stay disjoint.
func (r *Roster) SetAvailability(id string, day int, kind AvailabilityKind) error {
	e, err := r.find(id)
	if err != nil {
		return err
	}
	if day < 1 {
		return fmt.Errorf("invalid day %d", day)
	}

	e.UnavailableDays = removeDay(e.UnavailableDays, day)
	e.VacationDays = removeDay(e.VacationDays, day)

	switch kind {
	case AvailabilityUnavailable:
		e.UnavailableDays = append(e.UnavailableDays, day)
	case AvailabilityVacation:
		e.VacationDays = append(e.VacationDays, day)
	case AvailabilityNone:
		// removal only
	default:
		return fmt.Errorf("unknown availability kind %q", kind)
	}
	return nil
}

// removeDay allocates a fresh slice rather than compacting in place, so
// copies of the employee handed out earlier keep their own view of the days.
func removeDay(days []int, day int) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d != day {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the roster size.
func (r *Roster) Len() int { return len(r.employees) }

// Employees returns copies of the roster entries in insertion order.
func (r *Roster) Employees() []models.Employee {
	out := make([]models.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, *e)
	}
	return out
}
