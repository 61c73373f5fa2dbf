package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
	"github.com/cannaconnect/cannaconnect-api/internal/middleware"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
)

// Services are the workflows exposed over HTTP.
type Services struct {
	Auth        *services.AuthService
	Users       *services.UserService
	Companies   *services.CompanyService
	Connections *services.ConnectionService
	Jobs        *services.JobService
	Media       *services.MediaService
	Ads         *services.AdService
}

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	MaxUploadBytes int64
	Recorder       metrics.Recorder
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer prometheus.Gatherer
	// AuthLimiter throttles /signup and /login when set.
	AuthLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with every route.
func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery(), middleware.Metrics(recorder))
	r.MaxMultipartMemory = 8 << 20

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	companyHandler := NewCompanyHandler(svc.Companies, svc.Jobs)
	connectionHandler := NewConnectionHandler(svc.Connections)
	jobHandler := NewJobHandler(svc.Jobs, cfg.MaxUploadBytes)
	mediaHandler := NewMediaHandler(svc.Media, cfg.MaxUploadBytes)
	adHandler := NewAdHandler(svc.Ads)

	requireAuth := middleware.RequireAuth(svc.Auth)
	requireRefresh := middleware.RequireRefresh(svc.Auth)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "CannaConnect API is running",
		})
	})
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(cfg.Gatherer)))
	}

	// Auth routes
	credentials := r.Group("")
	if cfg.AuthLimiter != nil {
		credentials.Use(cfg.AuthLimiter.Middleware())
	}
	{
		credentials.POST("/signup", authHandler.Signup)
		credentials.POST("/login", authHandler.Login)
	}
	r.POST("/logout", requireRefresh, authHandler.Logout)
	r.POST("/refresh", requireRefresh, authHandler.Refresh)
	r.GET("/verify-email/:token", authHandler.VerifyEmail)
	r.POST("/verify-email/resend", requireAuth, authHandler.ResendVerification)

	// Public reads
	r.GET("/jobs", jobHandler.ListJobs)
	r.GET("/jobs/:id", jobHandler.GetJob)
	r.GET("/job/:id/comments", jobHandler.ListComments)
	r.GET("/companies/:id", companyHandler.GetCompany)
	r.GET("/companies/:id/jobs", companyHandler.ListCompanyJobs)
	r.GET("/ads", adHandler.ListAds)

	// Protected routes
	protected := r.Group("")
	protected.Use(requireAuth)
	{
		protected.GET("/profile", userHandler.GetProfile)
		protected.PATCH("/profile", userHandler.UpdateProfile)
		protected.GET("/users", userHandler.ListUsers)
		protected.GET("/users/:id", userHandler.GetUser)
		protected.GET("/users/:id/images", mediaHandler.ListUserImages)

		protected.POST("/companies", companyHandler.CreateCompany)
		protected.POST("/companies/:id/jobs", companyHandler.CreateCompanyJob)

		protected.POST("/connections/:userId/add", connectionHandler.RequestConnection)
		protected.PATCH("/users/connection/:id", connectionHandler.RespondToConnection)
		protected.DELETE("/connections/:id/delete", connectionHandler.DeleteConnection)
		protected.GET("/connections", connectionHandler.ListConnections)
		protected.GET("/connections/pending", connectionHandler.ListPending)
		protected.GET("/notifications", connectionHandler.ListNotifications)

		protected.POST("/favorite-connects/:userId/add", connectionHandler.AddFavorite)
		protected.GET("/favorite-connects", connectionHandler.ListFavorites)
		protected.DELETE("/favorite-connects/:id/delete", connectionHandler.RemoveFavorite)

		protected.POST("/job", jobHandler.CreateJob)
		protected.DELETE("/job/:id", jobHandler.DeleteJob)
		protected.POST("/job/:id/comment", jobHandler.AddComment)
		protected.POST("/job/:id/apply", jobHandler.Apply)
		protected.GET("/job/:id/applications", jobHandler.ListApplications)
		protected.PATCH("/job/:id/applications/:applicationId/status", jobHandler.UpdateApplicationStatus)

		protected.POST("/upload/video", mediaHandler.UploadVideo)
		protected.GET("/media/:id/stream", mediaHandler.StreamMedia)
		protected.POST("/upload/image", mediaHandler.UploadImage)
		protected.GET("/images/:id", mediaHandler.GetImage)

		protected.POST("/ads", adHandler.CreateAd)
		protected.PATCH("/ads/:id/toggle", adHandler.ToggleAd)

		protected.PATCH("/admin/users/:id/role", userHandler.SetRole)
	}

	return r
}
