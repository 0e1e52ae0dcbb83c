package planner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lysa05/schedule/pkg/models"
)

func testPlan(t *testing.T) (*Plan, string) {
	t.Helper()
	p := NewPlan("test", 2025, 12)
	e := p.AddEmployee()
	name := "Kuba"
	if err := p.UpdateEmployee(e.ID, EmployeeUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}
	return p, name
}

func TestManualEditRecomputesSynchronously(t *testing.T) {
	p, name := testPlan(t)

	err := p.SetShift(5, name, &models.Shift{Start: "08:00", End: "16:00"})
	if err != nil {
		t.Fatalf("SetShift: %v", err)
	}

	// Stats must already reflect the edit, with no stale window
	stats := p.Stats()
	if len(stats) != 1 {
		t.Fatalf("Expected 1 stat entry, got %d", len(stats))
	}
	if stats[0].Worked != 8.0 {
		t.Errorf("Expected worked 8.0, got %v", stats[0].Worked)
	}
	if stats[0].Opens != 1 {
		t.Errorf("Expected 08:00 start to count as an open, got %d", stats[0].Opens)
	}

	sh, ok := p.Schedule()[5][name]
	if !ok {
		t.Fatal("Expected schedule entry for day 5")
	}
	if sh.Type != models.ShiftManual {
		t.Errorf("Expected MANUAL type, got %s", sh.Type)
	}
	if sh.Duration != 8.0 {
		t.Errorf("Expected duration 8.0, got %v", sh.Duration)
	}
}

func TestClearShiftRestoresStats(t *testing.T) {
	p, name := testPlan(t)

	before := p.Stats()

	_ = p.SetShift(5, name, &models.Shift{Start: "08:00", End: "16:00"})
	if err := p.SetShift(5, name, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if _, ok := p.Schedule()[5][name]; ok {
		t.Error("Expected entry removed after clear")
	}
	after := p.Stats()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Stats did not return to pre-edit values:\n%+v\n%+v", before, after)
	}
}

func TestSetShiftRejectsBadInput(t *testing.T) {
	p, name := testPlan(t)

	if err := p.SetShift(40, name, &models.Shift{Start: "08:00", End: "16:00"}); err == nil {
		t.Error("Expected error for out-of-range day")
	}
	if err := p.SetShift(5, name, &models.Shift{Start: "16:00", End: "08:00"}); err == nil {
		t.Error("Expected error for inverted shift")
	}
}

func TestBeginSolveGuardsConcurrentGenerate(t *testing.T) {
	p, _ := testPlan(t)
	p.ApplyConfig(testStore())

	if _, err := p.BeginSolve(); err != nil {
		t.Fatalf("BeginSolve: %v", err)
	}
	if _, err := p.BeginSolve(); !errors.Is(err, ErrSolvePending) {
		t.Errorf("Expected ErrSolvePending, got %v", err)
	}

	p.FailSolve(errors.New("boom"))
	if p.Pending() {
		t.Error("Expected pending cleared after failure")
	}
	if p.LastError() != "boom" {
		t.Errorf("Expected last error kept, got %q", p.LastError())
	}
	if _, err := p.BeginSolve(); err != nil {
		t.Errorf("Expected generate allowed again, got %v", err)
	}
}

func TestCompleteSolveLoadsSchedule(t *testing.T) {
	p, name := testPlan(t)
	p.ApplyConfig(testStore())

	if _, err := p.BeginSolve(); err != nil {
		t.Fatalf("BeginSolve: %v", err)
	}

	resp := &models.SolveResponse{
		Status:         "OPTIMAL",
		ObjectiveValue: 1234,
		Schedule: map[string]map[string]models.Shift{
			"1": {name: {Start: "08:30", End: "17:00", Type: models.ShiftOpen, Duration: 8.5}},
		},
	}
	if err := p.CompleteSolve(resp); err != nil {
		t.Fatalf("CompleteSolve: %v", err)
	}

	if p.Pending() {
		t.Error("Expected pending cleared")
	}
	stats := p.Stats()
	if len(stats) != 1 || stats[0].Worked != 8.5 || stats[0].Opens != 1 {
		t.Errorf("Unexpected stats after solve: %+v", stats)
	}
}

func TestCompleteSolveNoSolution(t *testing.T) {
	p, _ := testPlan(t)
	p.ApplyConfig(testStore())

	_, _ = p.BeginSolve()
	resp := &models.SolveResponse{Status: "INFEASIBLE"}
	if err := p.CompleteSolve(resp); err != nil {
		t.Fatalf("CompleteSolve: %v", err)
	}

	if p.Result().Solved() {
		t.Error("INFEASIBLE must not count as solved")
	}
	if p.LastError() != "" {
		t.Errorf("No-solution is not an error, got %q", p.LastError())
	}
}

func TestApplyConfigSeedsPlan(t *testing.T) {
	p := NewPlan("test", 2025, 12)
	store := testStore()
	store.Employees = []models.Employee{
		{Name: "Kuba", Role: models.RoleManager, ContractFte: 1.0},
		{Name: "Misa", Role: models.RoleAssistant, ContractFte: 0.5},
	}
	store.SpecialDays = []models.SpecialDay{
		{Day: 25, Type: models.DayHolidayClosed},
	}
	if err := p.ApplyConfig(store); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}

	emps := p.Employees()
	if len(emps) != 2 {
		t.Fatalf("Expected 2 seeded employees, got %d", len(emps))
	}
	if emps[1].TargetHours != 92 {
		t.Errorf("Expected seeded target 92, got %v", emps[1].TargetHours)
	}
	days := p.SpecialDays()
	if len(days) != 1 || days[0].Type != models.DayHolidayClosed {
		t.Errorf("Expected seeded closed holiday, got %+v", days)
	}
}

func TestApplyConfigRejectsBadDay(t *testing.T) {
	p, _ := testPlan(t)
	store := testStore()
	store.SpecialDays = []models.SpecialDay{
		{Day: 40, Type: models.DayBusy},
	}

	if err := p.ApplyConfig(store); err == nil {
		t.Fatal("Expected error for out-of-range seeded day")
	}
	// The rejected configuration must leave the plan untouched
	if p.ConfigLoaded() {
		t.Error("Expected no configuration applied after rejection")
	}
	if len(p.SpecialDays()) != 0 {
		t.Errorf("Expected empty calendar after rejection, got %+v", p.SpecialDays())
	}
}

func TestSetPeriodResetsCalendarAndSchedule(t *testing.T) {
	p, name := testPlan(t)
	_ = p.SetDay(5, DayUpdate{Type: dayType(models.DayBusy)})
	_ = p.SetShift(5, name, &models.Shift{Start: "08:00", End: "16:00"})

	p.SetPeriod(2026, 1)

	if len(p.SpecialDays()) != 0 {
		t.Error("Expected calendar reset on period change")
	}
	if len(p.Schedule()) != 0 {
		t.Error("Expected schedule discarded on period change")
	}
}
