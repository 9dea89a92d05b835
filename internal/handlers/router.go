package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HealthCheck is GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter wires every endpoint onto a gin engine.
func NewRouter(
	applications *ApplicationHandler,
	freeJobs *FreeJobHandler,
	interviews *InterviewHandler,
	notifications *NotificationHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/health", HealthCheck)

	applied := r.Group("/applied-jobs")
	{
		applied.POST("", applications.Apply)
		applied.DELETE("", applications.Withdraw)
		applied.GET("", applications.ListAll)
		applied.GET("/details", applications.ListAllWithDetails)
		applied.PATCH("/:id/status", applications.SetStatus)
		applied.POST("/validate", applications.Validate)
		applied.PATCH("/seen", applications.MarkSeen)
		applied.GET("/user/:user_id", applications.ListByUser)
		applied.GET("/user/:user_id/count", applications.CountByUser)
		applied.GET("/post/:post_id", applications.ListByPost)
		applied.GET("/post/:post_id/count", applications.CountByPost)
		applied.GET("/shortlisted/:user_id", applications.Shortlisted)
		applied.GET("/shortlisted/:user_id/count", applications.ShortlistedCount)
	}

	r.GET("/jobs/user/:user_id", applications.JobsByUser)

	free := r.Group("/free-jobs")
	{
		free.GET("", freeJobs.List)
		free.POST("", freeJobs.Post)
	}

	iv := r.Group("/interviews")
	{
		iv.POST("", interviews.Create)
		iv.PUT("/:id", interviews.Update)
		iv.DELETE("/:id", interviews.Delete)
		iv.GET("/:id", interviews.GetByID)
		iv.GET("/user/:user_id", interviews.ListByUser)
		iv.GET("/employee/:employee_id", interviews.ListByEmployee)
	}

	notif := r.Group("/notifications")
	{
		notif.GET("", notifications.ListAll)
		notif.GET("/:id", notifications.GetByID)
		notif.GET("/candidate/:id", notifications.CandidateFeed)
		notif.GET("/employer/:id", notifications.EmployerFeed)
		notif.PATCH("/:id/read", notifications.MarkRead)
	}

	return r
}
