package planner

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lysa05/schedule/pkg/config"
	"github.com/lysa05/schedule/pkg/models"
)

// ErrSolvePending is returned when a generate action arrives while a solve
// for the same plan is still outstanding.
var ErrSolvePending = errors.New("a solve is already in progress for this plan")

// Plan is one staffing session: a month's calendar, roster, configuration,
// schedule and derived statistics. Every mutation that can change the
// schedule recomputes the statistics before it returns, so a reader can
// never observe the two disagreeing.
type Plan struct {
	ID string

	mu        sync.Mutex
	calendar  *Calendar
	roster    *Roster
	store     *config.Store
	schedule  *ScheduleStore
	stats     []models.EmployeeStat
	result    *models.SolveResponse
	progress  *Progress
	pending   bool
	lastError string
}

// NewPlan creates an empty plan for the given month. The store configuration
// is nil until one is applied; building a request before that fails.
func NewPlan(id string, year, month int) *Plan {
	return &Plan{
		ID:       id,
		calendar: NewCalendar(year, month),
		roster:   NewRoster(184),
		schedule: NewScheduleStore(),
		progress: NewProgress(),
	}
}

// ApplyConfig installs a store configuration, seeding the roster and the
// special-day calendar from it and discarding any previous schedule. A
// configuration carrying an invalid special day is rejected as a whole and
// the plan keeps its previous state.
func (p *Plan) ApplyConfig(store *config.Store) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	year, month := p.calendar.Year(), p.calendar.Month()
	if store.Year != 0 && store.Month != 0 {
		year, month = store.Year, store.Month
	}
	cal := NewCalendar(year, month)
	if year == p.calendar.Year() && month == p.calendar.Month() {
		for _, d := range p.calendar.SpecialDays() {
			cal.days[d.Day] = d
		}
	}
	for _, sd := range store.SpecialDays {
		day := sd
		err := cal.SetDay(sd.Day, DayUpdate{
			Type:          &day.Type,
			OpenTime:      &day.OpenTime,
			CloseTime:     &day.CloseTime,
			StaffOverride: &day.StaffOverride,
		})
		if err != nil {
			return fmt.Errorf("configuration special day %d: %w", sd.Day, err)
		}
	}

	p.store = store
	p.roster.SetFulltimeHours(store.FulltimeHours)
	if len(store.Employees) > 0 {
		p.roster.Seed(store.Employees)
	}
	p.calendar = cal
	p.discardResultLocked()
	return nil
}

// SetPeriod switches the plan to another month. The calendar resets in full
// and the previous schedule is discarded.
func (p *Plan) SetPeriod(year, month int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calendar.SetPeriod(year, month)
	p.discardResultLocked()
}

func (p *Plan) discardResultLocked() {
	p.schedule.Clear()
	p.result = nil
	p.stats = nil
	p.progress.Reset()
}

// Period returns the active year and month.
func (p *Plan) Period() (year, month int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calendar.Year(), p.calendar.Month()
}

// SetDay applies a partial update to one calendar day.
func (p *Plan) SetDay(day int, update DayUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.calendar.SetDay(day, update); err != nil {
		return err
	}
	p.recomputeLocked()
	return nil
}

// SetWeekendsClosed bulk-closes every weekend day of the month.
func (p *Plan) SetWeekendsClosed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calendar.SetWeekendsClosed()
	p.recomputeLocked()
}

// ClearDays resets every day to normal.
func (p *Plan) ClearDays() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calendar.ClearAll()
	p.recomputeLocked()
}

// SpecialDays returns the non-default calendar days.
func (p *Plan) SpecialDays() []models.SpecialDay {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calendar.SpecialDays()
}

// AddEmployee appends a fresh roster entry.
func (p *Plan) AddEmployee() models.Employee {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := p.roster.Add()
	p.recomputeLocked()
	return e
}

// RemoveEmployee deletes a roster entry.
func (p *Plan) RemoveEmployee(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.roster.Remove(id); err != nil {
		return err
	}
	p.recomputeLocked()
	return nil
}

// UpdateEmployee applies a partial roster update.
func (p *Plan) UpdateEmployee(id string, u EmployeeUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.roster.Update(id, u); err != nil {
		return err
	}
	p.recomputeLocked()
	return nil
}

// SetAvailability toggles one day of one employee's availability.
func (p *Plan) SetAvailability(id string, day int, kind AvailabilityKind) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.roster.SetAvailability(id, day, kind); err != nil {
		return err
	}
	p.recomputeLocked()
	return nil
}

// SetFulltimeHours changes the full-time monthly hours, re-deriving targets.
func (p *Plan) SetFulltimeHours(h float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roster.SetFulltimeHours(h)
	p.recomputeLocked()
}

// Employees returns the roster entries.
func (p *Plan) Employees() []models.Employee {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.roster.Employees()
}

// BuildRequest assembles the solver request for this plan.
func (p *Plan) BuildRequest() (models.SolveRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return BuildRequest(p.calendar, p.roster, p.store)
}

// BeginSolve marks a solve as outstanding and returns the request to submit.
// Only one solve may be outstanding per plan; there is no cancellation.
func (p *Plan) BeginSolve() (models.SolveRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending {
		return models.SolveRequest{}, ErrSolvePending
	}
	req, err := BuildRequest(p.calendar, p.roster, p.store)
	if err != nil {
		return models.SolveRequest{}, err
	}
	p.pending = true
	p.lastError = ""
	p.progress.Reset()
	return req, nil
}

// CompleteSolve stores the solver response. A solved schedule is loaded and
// the statistics recomputed locally, which both validates the solver's
// figures and establishes the baseline for later manual edits.
func (p *Plan) CompleteSolve(resp *models.SolveResponse) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = false
	p.progress.Finish()
	p.result = resp
	if !resp.Solved() {
		p.schedule.Clear()
		p.stats = nil
		return nil
	}
	if err := p.schedule.Load(resp.Schedule); err != nil {
		return err
	}
	p.recomputeLocked()
	return nil
}

// FailSolve records a transport or server failure. Prior state is kept.
func (p *Plan) FailSolve(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = false
	p.progress.Reset()
	p.lastError = err.Error()
}

// Pending reports whether a solve is outstanding.
func (p *Plan) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// TickProgress advances the cosmetic indicator while a solve is pending and
// returns its value.
func (p *Plan) TickProgress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending {
		return p.progress.Tick()
	}
	return p.progress.Value()
}

// LastError returns the message of the most recent solve failure, if any.
func (p *Plan) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}

// Result returns the raw solver response, or nil before the first solve.
func (p *Plan) Result() *models.SolveResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// ConfigLoaded reports whether a store configuration has been applied.
func (p *Plan) ConfigLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store != nil
}

// SetShift overrides one schedule entry; nil clears it. The statistics are
// recomputed before the call returns.
func (p *Plan) SetShift(day int, name string, shift *models.Shift) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if day < 1 || day > p.calendar.NumDays() {
		return errors.New("day out of range")
	}
	if err := p.schedule.SetShift(day, name, shift); err != nil {
		return err
	}
	p.recomputeLocked()
	return nil
}

// Schedule returns a copy of the current assignment.
func (p *Plan) Schedule() models.Schedule {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.schedule.Snapshot()
}

// Stats returns the current derived statistics.
func (p *Plan) Stats() []models.EmployeeStat {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.EmployeeStat, len(p.stats))
	copy(out, p.stats)
	return out
}

func (p *Plan) recomputeLocked() {
	if p.schedule.Len() == 0 && p.result == nil {
		p.stats = nil
		return
	}
	p.stats = Recompute(p.schedule.Snapshot(), p.roster, p.calendar)
}
