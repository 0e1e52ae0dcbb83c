package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lysa05/schedule/pkg/auth"
	"github.com/lysa05/schedule/pkg/config"
	"github.com/lysa05/schedule/pkg/database"
	"github.com/lysa05/schedule/pkg/handlers"
	"github.com/lysa05/schedule/pkg/planner"
	"github.com/lysa05/schedule/pkg/solver"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	defaults, err := config.Default()
	if err != nil {
		// Plans can still be created; generating fails with a precondition
		// error until a configuration is uploaded.
		log.Printf("could not load default store configuration: %v", err)
	}

	solverURL := os.Getenv("SOLVER_URL")
	if solverURL == "" {
		solverURL = "http://localhost:8000"
	}

	h := &handlers.Handler{
		DB:       db,
		Plans:    planner.NewRegistry(),
		Solver:   solver.NewClient(solverURL),
		Defaults: defaults,
	}

	r := gin.Default()

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Store Staff Planner API",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Planning Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/usage", h.GetMyUsage)

		api.POST("/plans", h.CreatePlan)
		api.GET("/plans/:id", h.GetPlan)
		api.DELETE("/plans/:id", h.DeletePlan)
		api.PUT("/plans/:id/period", h.SetPeriod)
		api.PUT("/plans/:id/hours", h.SetFulltimeHours)
		api.PUT("/plans/:id/config", h.UploadConfig)

		api.PUT("/plans/:id/days/:day", h.SetDay)
		api.POST("/plans/:id/days/weekends-closed", h.SetWeekendsClosed)
		api.DELETE("/plans/:id/days", h.ClearDays)

		api.POST("/plans/:id/employees", h.AddEmployee)
		api.PUT("/plans/:id/employees/:eid", h.UpdateEmployee)
		api.DELETE("/plans/:id/employees/:eid", h.RemoveEmployee)
		api.PUT("/plans/:id/employees/:eid/availability", h.SetAvailability)

		api.POST("/plans/:id/validate", h.ValidatePlan)
		api.POST("/plans/:id/generate", h.Generate)
		api.GET("/plans/:id/progress", h.GetProgress)
		api.GET("/plans/:id/result", h.GetResult)

		api.PUT("/plans/:id/schedule/:day/:name", h.SetShift)
		api.DELETE("/plans/:id/schedule/:day/:name", h.ClearShift)
		api.GET("/plans/:id/stats", h.GetStats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
