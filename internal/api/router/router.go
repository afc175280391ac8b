package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobscout/jobscout-be/internal/api/handler"
)

// HealthChecker reports database connectivity for the health endpoint
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, db HealthChecker) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		if db != nil {
			if err := db.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  "database unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "jobscout-api",
		})
	})

	searchHandler := handler.NewSearchHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	profileHandler := handler.NewProfileHandler(deps)
	resumeHandler := handler.NewResumeHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)

	v1 := r.Group("/api/v1")
	v1.Use(IdentityMiddleware())
	{
		// POST /api/v1/search - Run the search pipeline
		v1.POST("/search", searchHandler.RunSearch)

		jobs := v1.Group("/jobs")
		{
			// GET /api/v1/jobs - List stored postings
			jobs.GET("", jobHandler.ListJobs)

			// GET /api/v1/jobs/:job_id - Get posting details
			jobs.GET("/:job_id", jobHandler.GetJob)
		}

		profile := v1.Group("/profile")
		{
			// POST /api/v1/profile - Create the caller's profile
			profile.POST("", profileHandler.CreateProfile)

			// GET /api/v1/profile - Get the caller's profile
			profile.GET("", profileHandler.GetProfile)

			// PUT /api/v1/profile - Replace skills and experience
			profile.PUT("", profileHandler.UpdateProfile)

			// POST /api/v1/profile/resume - Upload a resume
			profile.POST("/resume", resumeHandler.UploadResume)
		}

		applications := v1.Group("/applications")
		{
			// PUT /api/v1/applications - Record application status
			applications.PUT("", applicationHandler.UpsertApplication)

			// GET /api/v1/applications - List the caller's applications
			applications.GET("", applicationHandler.ListApplications)
		}
	}

	return r
}
