package models

// DayType classifies a day of the planning month. A day absent from the
// calendar is Normal.
type DayType string

const (
	DayNormal        DayType = "normal"
	DayBusy          DayType = "busy"
	DayHolidayOpen   DayType = "holiday_open"
	DayHolidayClosed DayType = "holiday_closed"
	DayHolidayShort  DayType = "holiday_short"
)

// Valid reports whether t is one of the five known day types.
func (t DayType) Valid() bool {
	switch t {
	case DayNormal, DayBusy, DayHolidayOpen, DayHolidayClosed, DayHolidayShort:
		return true
	}
	return false
}

// SpecialDay is a non-default day of the month. OpenTime/CloseTime are only
// meaningful for holiday_short days; StaffOverride, when positive, pins the
// required headcount for the day.
type SpecialDay struct {
	Day           int     `json:"day"`
	Type          DayType `json:"type"`
	OpenTime      string  `json:"openTime,omitempty"`
	CloseTime     string  `json:"closeTime,omitempty"`
	StaffOverride int     `json:"staffOverride,omitempty"`
}

// IsDefault reports whether the day carries no information beyond "normal"
// and can be dropped from the calendar.
func (d SpecialDay) IsDefault() bool {
	return d.Type == DayNormal && d.OpenTime == "" && d.CloseTime == "" && d.StaffOverride == 0
}

// Role of an employee. The solver gives manager-class roles extra coverage
// constraints via SolveConfig.ManagerRoles.
type Role string

const (
	RoleManager            Role = "manager"
	RoleDeputy             Role = "deputy"
	RoleSupervisor         Role = "supervisor"
	RoleVisualMerchandiser Role = "visual_merchandiser"
	RoleAssistant          Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleDeputy, RoleSupervisor, RoleVisualMerchandiser, RoleAssistant:
		return true
	}
	return false
}

// Employee is a roster entry. UnavailableDays and VacationDays are disjoint;
// the registry's availability toggle maintains that invariant.
type Employee struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Role            Role    `json:"role"`
	ContractFte     float64 `json:"contractFte"`
	TargetHours     float64 `json:"targetHours"`
	UnavailableDays []int   `json:"unavailableDays"`
	VacationDays    []int   `json:"vacationDays"`
}

// ShiftType tags how a schedule entry came to be and how it counts toward
// the open/close/middle statistics.
type ShiftType string

const (
	ShiftOpen   ShiftType = "OPEN"
	ShiftClose  ShiftType = "CLOSE"
	ShiftFlex   ShiftType = "FLEX"
	ShiftFixed  ShiftType = "FIXED"
	ShiftManual ShiftType = "MANUAL"
)

// Shift is one employee's assignment on one day. Duration is computed when
// the shift is created and re-derived only on a manual edit.
type Shift struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	Type     ShiftType `json:"type"`
	Duration float64   `json:"duration"`
}

// Schedule maps day number -> employee name -> shift. At most one shift per
// employee per day; cleared entries are deleted, never nulled.
type Schedule map[int]map[string]Shift

// EmployeeStat is the derived per-employee view over a schedule. It is never
// edited directly; the recalculator rebuilds it from scratch.
type EmployeeStat struct {
	Name    string  `json:"name"`
	Worked  float64 `json:"worked"`
	PaidOff float64 `json:"paid_off"`
	Total   float64 `json:"total"`
	Target  float64 `json:"target"`
	Diff    float64 `json:"diff"`
	Opens   int     `json:"opens"`
	Closes  int     `json:"closes"`
	Middle  int     `json:"middle"`
}

// UnderstaffedDay reports a solver-detected coverage shortfall. Read-only on
// this side of the wire.
type UnderstaffedDay struct {
	Day       int `json:"day"`
	Needed    int `json:"needed"`
	Available int `json:"available"`
	Deficit   int `json:"deficit"`
}

// SolveConfig carries the global staffing toggles, passed through to the
// solver unchanged.
type SolveConfig struct {
	AutoStaffing bool     `json:"autoStaffing"`
	BusyWeekends bool     `json:"busyWeekends"`
	MinOpeners   int      `json:"minOpeners,omitempty"`
	MinClosers   int      `json:"minClosers,omitempty"`
	OpenRatio    float64  `json:"openRatio,omitempty"`
	CloseRatio   float64  `json:"closeRatio,omitempty"`
	ManagerRoles []string `json:"managerRoles,omitempty"`
}

// Weights tunes the solver objective. Shipped with the default configuration
// and passed through untouched.
type Weights struct {
	WorkHours         int `json:"work_hours"`
	DayShape          int `json:"day_shape"`
	ShiftCost         int `json:"shift_cost"`
	OpenCloseFairness int `json:"open_close_fairness"`
	Clopen            int `json:"clopen"`
}

// SolveRequest is the canonical wire shape for POST /solve.
type SolveRequest struct {
	Year             int          `json:"year"`
	Month            int          `json:"month"`
	FulltimeHours    float64      `json:"fulltimeHours"`
	Employees        []Employee   `json:"employees"`
	SpecialDays      []SpecialDay `json:"specialDays"`
	DefaultOpenTime  string       `json:"defaultOpenTime"`
	DefaultCloseTime string       `json:"defaultCloseTime"`
	Config           SolveConfig  `json:"config"`
	Weights          *Weights     `json:"weights,omitempty"`
}

// SolveResponse is what the solver returns. Schedule keys arrive as strings
// because JSON object keys always do.
type SolveResponse struct {
	Status           string                      `json:"status"`
	SolverStatus     string                      `json:"solver_status,omitempty"`
	SolveTimeSeconds float64                     `json:"solve_time_seconds,omitempty"`
	ObjectiveValue   float64                     `json:"objective_value"`
	Schedule         map[string]map[string]Shift `json:"schedule"`
	Employees        []EmployeeStat              `json:"employees"`
	Understaffed     []UnderstaffedDay           `json:"understaffed"`
}

// Solved reports whether the solver produced a usable assignment. Any other
// status is a normal "no solution" outcome, not an error.
func (r *SolveResponse) Solved() bool {
	return r.Status == "OPTIMAL" || r.Status == "FEASIBLE"
}
