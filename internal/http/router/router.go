package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/backend/internal/config"
	"github.com/skillswap/backend/internal/http/middleware"
	"github.com/skillswap/backend/internal/interface/http/handler"
)

func SetupRouter(
	cfg *config.Config,
	tokens middleware.AccessTokenParser,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	requestHandler *handler.SkillRequestHandler,
	messageHandler *handler.MessageHandler,
	reviewHandler *handler.ReviewHandler,
	profileHandler *handler.ProfileHandler,
	notificationHandler *handler.NotificationHandler,
	dashboardHandler *handler.DashboardHandler,
	wsHandler *handler.WSHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Публичные маршруты
	optional := middleware.OptionalAuth(tokens)
	api.GET("/ws", wsHandler.Handle)
	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/categories/:id", middleware.UUIDValidator("id"), catalogHandler.GetCategory)
	api.GET("/skills", catalogHandler.ListSkills)
	api.GET("/skills/search", catalogHandler.QuickSearch)
	api.GET("/skills/:id", middleware.UUIDValidator("id"), optional, catalogHandler.GetSkill)
	api.GET("/skills/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.ListSkillReviews)
	api.GET("/users/:username", optional, profileHandler.GetPublicProfile)
	api.GET("/users/:username/reviews", reviewHandler.ListUserReviews)

	// Защищённые маршруты
	writeLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.POST("/categories", catalogHandler.CreateCategory)
		protected.DELETE("/categories/:id", middleware.UUIDValidator("id"), catalogHandler.DeleteCategory)

		protected.POST("/skills", writeLimit, catalogHandler.CreateSkill)
		protected.PUT("/skills/:id", middleware.UUIDValidator("id"), catalogHandler.UpdateSkill)
		protected.DELETE("/skills/:id", middleware.UUIDValidator("id"), catalogHandler.DeleteSkill)

		// Заявки на обмен
		protected.POST("/skills/:id/requests", middleware.UUIDValidator("id"), writeLimit, requestHandler.CreateRequest)
		protected.GET("/requests", requestHandler.ListRequests)
		protected.GET("/requests/:id", middleware.UUIDValidator("id"), requestHandler.GetRequest)
		protected.POST("/requests/:id/accept", middleware.UUIDValidator("id"), requestHandler.AcceptRequest)
		protected.POST("/requests/:id/reject", middleware.UUIDValidator("id"), requestHandler.RejectRequest)
		protected.POST("/requests/:id/complete", middleware.UUIDValidator("id"), requestHandler.CompleteRequest)
		protected.POST("/requests/:id/cancel", middleware.UUIDValidator("id"), requestHandler.CancelRequest)

		// Переписка по заявке
		protected.GET("/requests/:id/messages", middleware.UUIDValidator("id"), messageHandler.ListMessages)
		protected.POST("/requests/:id/messages", middleware.UUIDValidator("id"), writeLimit, messageHandler.PostMessage)
		protected.POST("/requests/:id/messages/read", middleware.UUIDValidator("id"), messageHandler.MarkRead)
		protected.GET("/messages/unread/count", messageHandler.UnreadCount)

		// Отзывы
		protected.POST("/requests/:id/reviews", middleware.UUIDValidator("id"), writeLimit, reviewHandler.SubmitReview)
		protected.GET("/requests/:id/can-review", middleware.UUIDValidator("id"), reviewHandler.CanReview)

		protected.GET("/profile", profileHandler.GetMyProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.POST("/profile/avatar", writeLimit, profileHandler.UploadAvatar)
		protected.POST("/profile/skills", profileHandler.AddUserSkill)
		protected.DELETE("/profile/skills/:id", middleware.UUIDValidator("id"), profileHandler.RemoveUserSkill)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/recent", notificationHandler.Recent)
		protected.GET("/notifications/unread/count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), notificationHandler.Delete)

		protected.GET("/dashboard", dashboardHandler.Overview)
		protected.GET("/dashboard/stats", dashboardHandler.Stats)
		protected.GET("/dashboard/recommended", dashboardHandler.Recommended)
	}

	return r
}
