package routes

import (
	"net/http"
	"time"

	"osmeet/handlers"
	"osmeet/middleware"
	"osmeet/services/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the area handlers wired in main.
type HandlerBundle struct {
	Users      *handlers.UserHandler
	Meetings   *handlers.MeetingHandler
	SIGs       *handlers.SIGHandler
	Activities *handlers.ActivityHandler
	Collects   *handlers.CollectHandler
	UserSvc    user.UserService
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.Register)
		api.POST("/login", hb.Users.Login)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserSvc))
		api.GET("/me", hb.Users.Me)
		api.PUT("/fcm-token", hb.Users.UpdateFCMToken)
		api.DELETE("/session", hb.Users.Logout)
	}
}

// RegisterMeetingRoutes sets up the booking engine endpoints.
func RegisterMeetingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/meetings")
	{
		// Listing and detail are public.
		api.GET("", hb.Meetings.ListMeetings)
		api.GET("/:id", hb.Meetings.GetMeeting)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserSvc))
		protected.POST("", hb.Meetings.BookMeeting)
		protected.DELETE("/:id", hb.Meetings.CancelMeeting)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthUserMiddleware(hb.UserSvc), middleware.AdminOnly())
		admin.PUT("/:id/replay", hb.Meetings.SetReplay)
	}
}

// RegisterSIGRoutes registers SIG management endpoints.
func RegisterSIGRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/sigs")
	{
		api.GET("", hb.SIGs.List)
		api.GET("/:id", hb.SIGs.Get)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserSvc))
		protected.PUT("/:id", hb.SIGs.Update)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthUserMiddleware(hb.UserSvc), middleware.AdminOnly())
		admin.POST("", hb.SIGs.Create)
		admin.DELETE("/:id", hb.SIGs.Delete)
	}
}

// RegisterActivityRoutes registers community event endpoints.
func RegisterActivityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/activities")
	{
		api.GET("", hb.Activities.List)
		// "/id/:id" keeps the detail route clear of static siblings like
		// "/drafts" in the router tree.
		api.GET("/id/:id", hb.Activities.Get)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserSvc))
		protected.GET("/drafts", hb.Activities.ListDrafts)
		protected.POST("", hb.Activities.CreateDraft)
		protected.PUT("/id/:id/publish", hb.Activities.Publish)
		protected.DELETE("/id/:id", hb.Activities.Cancel)
	}
}

// RegisterCollectionRoutes registers favorite endpoints.
func RegisterCollectionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/collections")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserSvc))
		api.POST("", hb.Collects.Collect)
		api.DELETE("", hb.Collects.Uncollect)
		api.GET("", hb.Collects.ListMine)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterMeetingRoutes(r, hb)
	RegisterSIGRoutes(r, hb)
	RegisterActivityRoutes(r, hb)
	RegisterCollectionRoutes(r, hb)
	RegisterHealthRoute(r)
}
