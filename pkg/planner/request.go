package planner

import (
	"errors"
	"fmt"

	"github.com/lysa05/schedule/pkg/config"
	"github.com/lysa05/schedule/pkg/models"
)

// ErrConfigNotLoaded is returned when a solve request is built before the
// base store configuration has loaded. This is a precondition, not a runtime
// error to recover from.
var ErrConfigNotLoaded = errors.New("store configuration not loaded")

// BuildRequest merges the calendar, the roster and the store configuration
// into the canonical solver request.
func BuildRequest(cal *Calendar, roster *Roster, store *config.Store) (models.SolveRequest, error) {
	if store == nil {
		return models.SolveRequest{}, ErrConfigNotLoaded
	}
	if roster.Len() == 0 {
		return models.SolveRequest{}, errors.New("at least one employee is required")
	}
	for _, e := range roster.Employees() {
		if e.Name == "" {
			return models.SolveRequest{}, fmt.Errorf("employee %s has no name", e.ID)
		}
	}

	return models.SolveRequest{
		Year:             cal.Year(),
		Month:            cal.Month(),
		FulltimeHours:    roster.FulltimeHours(),
		Employees:        roster.Employees(),
		SpecialDays:      cal.SpecialDays(),
		DefaultOpenTime:  store.DefaultOpenTime,
		DefaultCloseTime: store.DefaultCloseTime,
		Config:           store.Config,
		Weights:          store.Weights,
	}, nil
}
