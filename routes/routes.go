package routes

import (
	"net/http"
	"time"

	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint reporting the optional backends.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm ServiceHub",
			"backends": utils.GetHealthStatus(),
		})
	})
}

// RegisterAuthRoutes registers sign-in endpoints. Only logout needs a session.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.Login)
		api.GET("/state", hb.Auth.State)
		api.POST("/logout", middleware.SessionAuthMiddleware(hb.Sessions), hb.Auth.Logout)
	}
}

// RegisterBrowseRoutes registers the home page, catalog and filter endpoints.
func RegisterBrowseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
	{
		api.GET("/home", hb.Home.GetHome)
		api.GET("/categories", hb.Catalog.GetCategories)
		api.GET("/providers", hb.Catalog.GetProviders)
		api.GET("/providers/:id", hb.Catalog.GetProvider)

		browse := api.Group("/browse")
		browse.POST("/search", hb.Home.Search)
		browse.POST("/category", hb.Home.SelectCategory)
		browse.DELETE("/query", hb.Home.ClearQuery)
		browse.DELETE("/category", hb.Home.ClearCategory)
		browse.DELETE("/filters", hb.Home.ClearFilters)
	}
}

// RegisterPremiumRoutes registers the premium gate endpoints.
func RegisterPremiumRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/premium")
	api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
	{
		api.GET("", hb.Premium.GetPremium)
		api.POST("/gate", hb.Premium.OpenGate)
		api.DELETE("/gate", hb.Premium.CloseGate)
		api.POST("/upgrade", hb.Premium.Upgrade)
	}
}

// RegisterChatRoutes registers the chat panel endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chats")
	api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
	{
		api.POST("", hb.Chat.Open)
		api.GET("/current", hb.Chat.Current)
		api.POST("/current/messages", hb.Chat.Send)
		api.POST("/current/attachments", hb.Chat.Attach)
		api.POST("/current/voice", hb.Chat.ToggleVoice)
		api.DELETE("/current", hb.Chat.Close)
	}
}

// RegisterAdRoutes registers banner and video ad endpoints.
func RegisterAdRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ads")
	api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
	{
		api.GET("/banner", hb.Ads.GetBanner)
		api.DELETE("/banner", hb.Ads.DismissBanner)
		api.GET("/video", hb.Ads.GetVideo)
		api.POST("/video/skip", hb.Ads.SkipVideo)
		api.DELETE("/video", hb.Ads.CloseVideo)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, requestsPerMinute int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(requestsPerMinute))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterBrowseRoutes(r, hb)
	RegisterPremiumRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterAdRoutes(r, hb)
}
