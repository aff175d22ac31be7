package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slgoiko/unirhub/internal/app/controllers"
	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	subjectController *controllers.SubjectController,
	noteController *controllers.NoteController,
	resourceController *controllers.ResourceController,
	activityController *controllers.ActivityController,
	eventController *controllers.EventController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.GET("/login", authController.Login)
		auth.GET("/login/start", authController.LoginStart)
		auth.GET("/callback", authController.Callback)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Subject routes, with the child collections nested under a subject
		subjects := authenticated.Group("/subjects")
		{
			subjects.POST("", subjectController.CreateSubject)
			subjects.GET("", subjectController.GetAllSubjects)
			subjects.GET("/:id", subjectController.GetSubjectByID)
			subjects.PUT("/:id", subjectController.UpdateSubject)
			subjects.DELETE("/:id", subjectController.DeleteSubject)

			subjects.POST("/:id/notes", noteController.CreateNote)
			subjects.POST("/:id/resources", resourceController.UploadResources)
			subjects.POST("/:id/links", resourceController.CreateLink)
			subjects.POST("/:id/activities", activityController.CreateActivity)
			subjects.POST("/:id/events", eventController.CreateSubjectEvent)
		}

		authenticated.DELETE("/notes/:id", noteController.DeleteNote)

		resources := authenticated.Group("/resources")
		{
			resources.GET("/:id/download", resourceController.DownloadResource)
			resources.DELETE("/:id", resourceController.DeleteResource)
		}

		activities := authenticated.Group("/activities")
		{
			activities.GET("/:id", activityController.GetActivity)
			activities.POST("/:id/toggle", activityController.ToggleActivity)
			activities.PUT("/:id/grade", activityController.GradeActivity)
			activities.POST("/:id/files", activityController.AttachActivityFiles)
			activities.DELETE("/:id", activityController.DeleteActivity)
		}

		events := authenticated.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
		}

		authenticated.GET("/calendar", eventController.GetCalendar)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
