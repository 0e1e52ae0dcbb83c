package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/lysa05/schedule/pkg/models"
)

//go:embed default_config.json
var defaultConfig []byte

// Store times used when a configuration does not say otherwise.
const (
	DefaultOpenTime  = "08:30"
	DefaultCloseTime = "21:00"
)

// Store is a full store configuration: global hours, staffing toggles,
// solver weights, the seed roster and the seed special-day calendar.
type Store struct {
	Year             int                 `json:"year,omitempty"`
	Month            int                 `json:"month,omitempty"`
	FulltimeHours    float64             `json:"fulltimeHours"`
	DefaultOpenTime  string              `json:"defaultOpenTime"`
	DefaultCloseTime string              `json:"defaultCloseTime"`
	Employees        []models.Employee   `json:"employees"`
	SpecialDays      []models.SpecialDay `json:"specialDays"`
	Config           models.SolveConfig  `json:"config"`
	Weights          *models.Weights     `json:"weights,omitempty"`
}

// legacyStore is the historical configuration shape: snake_case fields, a
// named day collection per concern instead of a typed specialDays array, and
// contract fractions under contract_type.
type legacyStore struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	FulltimeHours float64 `json:"full_time_hours"`
	Employees     []struct {
		Name            string  `json:"name"`
		Role            string  `json:"role"`
		ContractType    float64 `json:"contract_type"`
		UnavailableDays []int   `json:"unavailable_days"`
		VacationDays    []int   `json:"vacation_days"`
	} `json:"employees"`
	ClosedHolidays []int `json:"closed_holidays"`
	OpenHolidays   []int `json:"open_holidays"`
	HeavyDays      map[string]struct {
		ExtraStaff int `json:"extra_staff"`
	} `json:"heavy_days"`
	SpecialDays map[string]struct {
		Open  string `json:"open"`
		Close string `json:"close"`
		Staff int    `json:"staff"`
	} `json:"special_days"`
	Config struct {
		AutoStaffing bool     `json:"auto_staffing"`
		BusyWeekends bool     `json:"busy_weekends"`
		MinOpeners   int      `json:"min_openers"`
		MinClosers   int      `json:"min_closers"`
		OpenRatio    float64  `json:"open_ratio"`
		CloseRatio   float64  `json:"close_ratio"`
		ManagerRoles []string `json:"manager_roles"`
	} `json:"config"`
	Weights *models.Weights `json:"weights"`
}

// Default returns the built-in store configuration.
func Default() (*Store, error) {
	return Parse(defaultConfig)
}

// Parse reads a configuration in either the canonical or the legacy shape.
// Legacy payloads are migrated to the canonical representation here, at the
// loading boundary, so nothing downstream ever sees the old field names.
func Parse(data []byte) (*Store, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid configuration JSON: %w", err)
	}

	if _, legacy := probe["full_time_hours"]; legacy {
		var ls legacyStore
		if err := json.Unmarshal(data, &ls); err != nil {
			return nil, fmt.Errorf("invalid configuration JSON: %w", err)
		}
		return migrate(&ls)
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid configuration JSON: %w", err)
	}
	s.fillDefaults()
	return &s, nil
}

func (s *Store) fillDefaults() {
	if s.FulltimeHours == 0 {
		s.FulltimeHours = 184
	}
	if s.DefaultOpenTime == "" {
		s.DefaultOpenTime = DefaultOpenTime
	}
	if s.DefaultCloseTime == "" {
		s.DefaultCloseTime = DefaultCloseTime
	}
	if s.Config.ManagerRoles == nil {
		s.Config.ManagerRoles = []string{"manager", "deputy", "supervisor"}
	}
}

// migrate collapses the legacy day collections into the typed specialDays
// array. A day named by several collections resolves closed > short > open >
// busy; a heavy day's extra-staff intent survives as the busy type.
func migrate(ls *legacyStore) (*Store, error) {
	s := &Store{
		Year:          ls.Year,
		Month:         ls.Month,
		FulltimeHours: ls.FulltimeHours,
		Config: models.SolveConfig{
			AutoStaffing: ls.Config.AutoStaffing,
			BusyWeekends: ls.Config.BusyWeekends,
			MinOpeners:   ls.Config.MinOpeners,
			MinClosers:   ls.Config.MinClosers,
			OpenRatio:    ls.Config.OpenRatio,
			CloseRatio:   ls.Config.CloseRatio,
			ManagerRoles: ls.Config.ManagerRoles,
		},
		Weights: ls.Weights,
	}

	for _, le := range ls.Employees {
		role := models.Role(le.Role)
		if !role.Valid() {
			// Historical payloads used "staff" for rank-and-file employees.
			role = models.RoleAssistant
		}
		fte := le.ContractType
		if fte <= 0 || fte > 1.0 {
			fte = 1.0
		}
		emp := models.Employee{
			Name:            le.Name,
			Role:            role,
			ContractFte:     fte,
			UnavailableDays: le.UnavailableDays,
			VacationDays:    le.VacationDays,
		}
		if emp.UnavailableDays == nil {
			emp.UnavailableDays = []int{}
		}
		if emp.VacationDays == nil {
			emp.VacationDays = []int{}
		}
		s.Employees = append(s.Employees, emp)
	}

	days := make(map[int]models.SpecialDay)
	for dayStr := range ls.HeavyDays {
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid heavy day key %q", dayStr)
		}
		days[day] = models.SpecialDay{Day: day, Type: models.DayBusy}
	}
	for _, day := range ls.OpenHolidays {
		days[day] = models.SpecialDay{Day: day, Type: models.DayHolidayOpen}
	}
	for dayStr, sd := range ls.SpecialDays {
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid special day key %q", dayStr)
		}
		days[day] = models.SpecialDay{
			Day:           day,
			Type:          models.DayHolidayShort,
			OpenTime:      sd.Open,
			CloseTime:     sd.Close,
			StaffOverride: sd.Staff,
		}
	}
	for _, day := range ls.ClosedHolidays {
		days[day] = models.SpecialDay{Day: day, Type: models.DayHolidayClosed}
	}

	keys := make([]int, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	sort.Ints(keys)
	for _, day := range keys {
		s.SpecialDays = append(s.SpecialDays, days[day])
	}

	s.fillDefaults()
	return s, nil
}
