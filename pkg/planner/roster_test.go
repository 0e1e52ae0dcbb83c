package planner

import (
	"reflect"
	"testing"

	"github.com/lysa05/schedule/pkg/models"
)

func fte(v float64) *float64 { return &v }

func TestTargetHours(t *testing.T) {
	// 31-day month, half-time contract on a 184h fund
	if got := TargetHours(184, 0.5); got != 92 {
		t.Errorf("Expected target 92, got %v", got)
	}
	if got := TargetHours(184, 1.0); got != 184 {
		t.Errorf("Expected target 184, got %v", got)
	}
	if got := TargetHours(184, 0.75); got != 138 {
		t.Errorf("Expected target 138, got %v", got)
	}
}

func TestUpdateRecomputesTarget(t *testing.T) {
	r := NewRoster(184)
	e := r.Add()

	if e.TargetHours != 184 {
		t.Errorf("Expected fresh employee target 184, got %v", e.TargetHours)
	}

	if err := r.Update(e.ID, EmployeeUpdate{ContractFte: fte(0.5)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := r.Get(e.ID)
	if got.TargetHours != 92 {
		t.Errorf("Expected target 92 after fte change, got %v", got.TargetHours)
	}
}

func TestSetFulltimeHoursRederivesTargets(t *testing.T) {
	r := NewRoster(184)
	e := r.Add()
	_ = r.Update(e.ID, EmployeeUpdate{ContractFte: fte(0.5)})

	r.SetFulltimeHours(160)
	got, _ := r.Get(e.ID)
	if got.TargetHours != 80 {
		t.Errorf("Expected target 80 after hours change, got %v", got.TargetHours)
	}
}

func TestUpdateRejectsBadFte(t *testing.T) {
	r := NewRoster(184)
	e := r.Add()

	if err := r.Update(e.ID, EmployeeUpdate{ContractFte: fte(0)}); err == nil {
		t.Error("Expected error for fte 0")
	}
	if err := r.Update(e.ID, EmployeeUpdate{ContractFte: fte(1.5)}); err == nil {
		t.Error("Expected error for fte above 1")
	}
}

func TestAvailabilityDisjoint(t *testing.T) {
	r := NewRoster(184)
	e := r.Add()

	_ = r.SetAvailability(e.ID, 5, AvailabilityUnavailable)
	_ = r.SetAvailability(e.ID, 6, AvailabilityUnavailable)
	_ = r.SetAvailability(e.ID, 5, AvailabilityVacation)
	_ = r.SetAvailability(e.ID, 6, AvailabilityNone)

	got, _ := r.Get(e.ID)
	if len(got.UnavailableDays) != 0 {
		t.Errorf("Expected no unavailable days, got %v", got.UnavailableDays)
	}
	if len(got.VacationDays) != 1 || got.VacationDays[0] != 5 {
		t.Errorf("Expected vacation days [5], got %v", got.VacationDays)
	}

	// Flip back and forth; the two sets must never intersect
	_ = r.SetAvailability(e.ID, 5, AvailabilityUnavailable)
	got, _ = r.Get(e.ID)
	for _, u := range got.UnavailableDays {
		for _, v := range got.VacationDays {
			if u == v {
				t.Errorf("Day %d present in both sets", u)
			}
		}
	}
}

func TestSeedCopiesAvailability(t *testing.T) {
	source := []models.Employee{
		{Name: "Kuba", ContractFte: 1.0, UnavailableDays: []int{6, 7, 20, 21}},
	}

	r := NewRoster(184)
	r.Seed(source)
	e := r.Employees()[0]

	// An availability edit on the seeded roster must not write back into
	// the source slice
	if err := r.SetAvailability(e.ID, 6, AvailabilityNone); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	if !reflect.DeepEqual(source[0].UnavailableDays, []int{6, 7, 20, 21}) {
		t.Errorf("Source configuration mutated: %v", source[0].UnavailableDays)
	}

	r2 := NewRoster(184)
	r2.Seed(source)
	got := r2.Employees()[0].UnavailableDays
	if !reflect.DeepEqual(got, []int{6, 7, 20, 21}) {
		t.Errorf("Second roster inherited edits from the first: %v", got)
	}
}

func TestSeedRestoresDisjointSets(t *testing.T) {
	r := NewRoster(184)
	r.Seed([]models.Employee{
		{Name: "Misa", ContractFte: 0.5, UnavailableDays: []int{23, 30}, VacationDays: []int{29, 30, 31}},
	})

	e := r.Employees()[0]
	if !reflect.DeepEqual(e.UnavailableDays, []int{23}) {
		t.Errorf("Expected day 30 dropped from unavailable set, got %v", e.UnavailableDays)
	}
	if !reflect.DeepEqual(e.VacationDays, []int{29, 30, 31}) {
		t.Errorf("Expected vacation days kept, got %v", e.VacationDays)
	}
}

func TestPaidHoursCredit(t *testing.T) {
	if got := PaidHoursCredit(1.0); got != 8.0 {
		t.Errorf("Expected 8h for full-time, got %v", got)
	}
	if got := PaidHoursCredit(0.75); got != 6.0 {
		t.Errorf("Expected 6h for 0.75, got %v", got)
	}
	if got := PaidHoursCredit(0.5); got != 4.0 {
		t.Errorf("Expected 4h for 0.5, got %v", got)
	}
}

func TestAddDefaults(t *testing.T) {
	r := NewRoster(184)
	e := r.Add()

	if e.Role != models.RoleAssistant {
		t.Errorf("Expected default role assistant, got %s", e.Role)
	}
	if e.ContractFte != 1.0 {
		t.Errorf("Expected default fte 1.0, got %v", e.ContractFte)
	}
	if len(e.UnavailableDays) != 0 || len(e.VacationDays) != 0 {
		t.Error("Expected empty availability for fresh employee")
	}

	e2 := r.Add()
	if e2.ID == e.ID {
		t.Errorf("Expected unique ids, both are %s", e.ID)
	}
}

func TestRemoveEmployee(t *testing.T) {
	r := NewRoster(184)
	e := r.Add()

	if err := r.Remove(e.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Expected empty roster, got %d", r.Len())
	}
	if err := r.Remove(e.ID); err == nil {
		t.Error("Expected error removing unknown id")
	}
}
