package router

import (
	"net/http"

	"github.com/cuongbtq/job-registry/internal/api/dto"
	"github.com/cuongbtq/job-registry/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(RecoveryMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Route not found"})
	})

	// Initialize job handler
	jobHandler := handler.NewJobHandler(deps)

	r.GET("/", jobHandler.Home)
	r.GET("/health", jobHandler.Health)

	// GET /all-jobs - List every job
	r.GET("/all-jobs", jobHandler.ListJobs)

	// GET /all-jobs/:id - Get one job
	r.GET("/all-jobs/:id", jobHandler.GetJob)

	// POST /post-job - Create a job
	r.POST("/post-job", jobHandler.CreateJob)

	// GET /myJobs/:email - Jobs posted by one user
	r.GET("/myJobs/:email", jobHandler.ListJobsByPoster)

	// PATCH /update-job/:id - Update or insert a job
	r.PATCH("/update-job/:id", jobHandler.UpdateJob)

	// DELETE /api/jobsdelete/:id - Delete a job
	r.DELETE("/api/jobsdelete/:id", jobHandler.DeleteJob)

	return r
}
