package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysa05/schedule/pkg/config"
	"github.com/lysa05/schedule/pkg/models"
	"github.com/lysa05/schedule/pkg/planner"
)

func (h *Handler) plan(c *gin.Context) (*planner.Plan, bool) {
	p, err := h.Plans.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return nil, false
	}
	return p, true
}

func planView(p *planner.Plan) gin.H {
	year, month := p.Period()
	return gin.H{
		"id":           p.ID,
		"year":         year,
		"month":        month,
		"configLoaded": p.ConfigLoaded(),
		"specialDays":  p.SpecialDays(),
		"employees":    p.Employees(),
		"schedule":     p.Schedule(),
		"stats":        p.Stats(),
		"pending":      p.Pending(),
	}
}

// CreatePlan starts a fresh planning session. The built-in store
// configuration is applied immediately when available, so a plan is ready to
// generate unless the default asset failed to load at startup.
func (h *Handler) CreatePlan(c *gin.Context) {
	var req struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Year == 0 || req.Month == 0 {
		now := time.Now()
		req.Year, req.Month = now.Year(), int(now.Month())
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}

	p := h.Plans.Create(req.Year, req.Month)
	if h.Defaults != nil {
		if err := p.ApplyConfig(h.Defaults); err != nil {
			h.Plans.Delete(p.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "default configuration is invalid: " + err.Error()})
			return
		}
		if h.Defaults.Year != req.Year || h.Defaults.Month != req.Month {
			p.SetPeriod(req.Year, req.Month)
		}
	}
	c.JSON(http.StatusCreated, planView(p))
}

// GetPlan returns the full state of one plan
func (h *Handler) GetPlan(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, planView(p))
}

// DeletePlan discards a planning session
func (h *Handler) DeletePlan(c *gin.Context) {
	h.Plans.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

// SetPeriod switches a plan to another month, resetting the calendar
func (h *Handler) SetPeriod(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	var req struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Year == 0 || req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month (1-12) are required"})
		return
	}
	p.SetPeriod(req.Year, req.Month)
	c.JSON(http.StatusOK, planView(p))
}

// SetDay applies a partial update to one calendar day
func (h *Handler) SetDay(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	var req struct {
		Type          *models.DayType `json:"type"`
		OpenTime      *string         `json:"openTime"`
		CloseTime     *string         `json:"closeTime"`
		StaffOverride *int            `json:"staffOverride"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := planner.DayUpdate{
		Type:          req.Type,
		OpenTime:      req.OpenTime,
		CloseTime:     req.CloseTime,
		StaffOverride: req.StaffOverride,
	}
	if err := p.SetDay(day, update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialDays": p.SpecialDays()})
}

// SetWeekendsClosed bulk-closes all weekend days of the active month
func (h *Handler) SetWeekendsClosed(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	p.SetWeekendsClosed()
	c.JSON(http.StatusOK, gin.H{"specialDays": p.SpecialDays()})
}

// ClearDays resets every day of the month back to normal
func (h *Handler) ClearDays(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	p.ClearDays()
	c.JSON(http.StatusOK, gin.H{"specialDays": p.SpecialDays()})
}

// AddEmployee appends a fresh roster entry
func (h *Handler) AddEmployee(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, p.AddEmployee())
}

// UpdateEmployee applies a partial update to one roster entry
func (h *Handler) UpdateEmployee(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string      `json:"name"`
		Role        *models.Role `json:"role"`
		ContractFte *float64     `json:"contractFte"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := planner.EmployeeUpdate{Name: req.Name, Role: req.Role, ContractFte: req.ContractFte}
	if err := p.UpdateEmployee(c.Param("eid"), update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": p.Employees()})
}

// RemoveEmployee deletes a roster entry
func (h *Handler) RemoveEmployee(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	if err := p.RemoveEmployee(c.Param("eid")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": p.Employees()})
}

// SetAvailability toggles one day of one employee's availability
func (h *Handler) SetAvailability(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	var req struct {
		Day  int                      `json:"day"`
		Kind planner.AvailabilityKind `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.SetAvailability(c.Param("eid"), req.Day, req.Kind); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": p.Employees()})
}

// SetFulltimeHours changes the full-time monthly hours for a plan
func (h *Handler) SetFulltimeHours(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	var req struct {
		FulltimeHours float64 `json:"fulltimeHours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FulltimeHours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fulltimeHours must be positive"})
		return
	}
	p.SetFulltimeHours(req.FulltimeHours)
	c.JSON(http.StatusOK, gin.H{"employees": p.Employees()})
}

// UploadConfig replaces a plan's store configuration from an uploaded JSON
// body. Legacy payload shapes are migrated on the way in. A malformed body
// is reported inline and the previous configuration stays active.
func (h *Handler) UploadConfig(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read configuration body"})
		return
	}
	store, err := config.Parse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.ApplyConfig(store); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, planView(p))
}

// SetShift overrides one schedule entry with a manual shift
func (h *Handler) SetShift(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}
	var req struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shift := &models.Shift{Start: req.Start, End: req.End}
	if err := p.SetShift(day, c.Param("name"), shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": p.Schedule(), "stats": p.Stats()})
}

// ClearShift removes one schedule entry
func (h *Handler) ClearShift(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}
	if err := p.SetShift(day, c.Param("name"), nil); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": p.Schedule(), "stats": p.Stats()})
}

// GetStats returns the derived per-employee statistics
func (h *Handler) GetStats(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": p.Stats()})
}

// ValidatePlan checks whether a plan could build a solve request right now
func (h *Handler) ValidatePlan(c *gin.Context) {
	p, ok := h.plan(c)
	if !ok {
		return
	}
	if _, err := p.BuildRequest(); err != nil {
		status := http.StatusOK
		if errors.Is(err, planner.ErrConfigNotLoaded) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"valid": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"employee_count":    len(p.Employees()),
			"special_day_count": len(p.SpecialDays()),
		},
	})
}
