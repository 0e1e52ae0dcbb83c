package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysa05/schedule/pkg/planner"
)

// Generate builds the solve request for a plan and submits it to the
// external solver in the background. The solve runs to completion or
// failure; it cannot be aborted, and a second generate for the same plan is
// rejected while one is outstanding.
func (h *Handler) Generate(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}

	req, err := p.BeginSolve()
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrSolvePending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, planner.ErrConfigNotLoaded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	h.RecordSolveUsage(c, len(req.Employees), daysInMonth(req.Year, req.Month))

	go func(plan *planner.Plan) {
		resp, err := h.Solver.Submit(context.Background(), req)
		if err != nil {
			plan.FailSolve(err)
			log.Printf("solve failed for plan %s: %v", plan.ID, err)
			return
		}
		if err := plan.CompleteSolve(resp); err != nil {
			plan.FailSolve(err)
			log.Printf("could not apply solve result for plan %s: %v", plan.ID, err)
		}
	}(p)

	c.JSON(http.StatusAccepted, gin.H{
		"plan":    p.ID,
		"pending": true,
	})
}

// daysInMonth returns the number of days of the plan's month, recorded as
// the plan size in the usage rows.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GetProgress reports the cosmetic solve indicator. The percentage creeps
// toward completion while the solve is pending and says nothing about actual
// solver progress.
func (h *Handler) GetProgress(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	out := gin.H{
		"pending":  p.Pending(),
		"progress": p.TickProgress(),
	}
	if msg := p.LastError(); msg != "" {
		out["error"] = msg
	}
	c.JSON(http.StatusOK, out)
}

// GetResult returns the outcome of the most recent solve. A well-formed
// response with a non-optimal status is a normal outcome, rendered as "no
// solution" with the raw status attached.
func (h *Handler) GetResult(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	if p.Pending() {
		c.JSON(http.StatusOK, gin.H{"pending": true})
		return
	}
	if msg := p.LastError(); msg != "" {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "We could not generate the schedule. Please try again or contact your administrator.",
			"detail": msg,
		})
		return
	}
	result := p.Result()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedule has been generated yet"})
		return
	}
	if !result.Solved() {
		c.JSON(http.StatusOK, gin.H{
			"solved": false,
			"status": result.Status,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"solved":             true,
		"status":             result.Status,
		"solver_status":      result.SolverStatus,
		"solve_time_seconds": result.SolveTimeSeconds,
		"objective_value":    result.ObjectiveValue,
		"schedule":           p.Schedule(),
		"employees":          p.Stats(),
		"understaffed":       result.Understaffed,
	})
}
