package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twinheart/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	chatH *ChatHandler,
	reminderH *ReminderHandler,
	moodH *MoodHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	users := r.Group("/users")
	users.POST("", userH.Register)

	auth := r.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)

	authed := r.Group("/", JWTAuthMiddleware(jwtSvc))
	authed.GET("/me", userH.Me)
	authed.PUT("/me/profile", userH.UpdateProfile)

	authed.POST("/session", chatH.CreateSession)
	authed.POST("/message", chatH.PostMessage)
	authed.GET("/session/:id/messages", chatH.GetHistory)
	authed.GET("/chat/proactive", chatH.Proactive)
	authed.GET("/chat/insights", chatH.Insights)
	authed.POST("/chat/similar", chatH.SimilarMoments)

	reminders := authed.Group("/reminders")
	reminders.GET("", reminderH.List)
	reminders.POST("", reminderH.Add)
	reminders.GET("/today", reminderH.Today)
	reminders.GET("/overdue", reminderH.Overdue)
	reminders.GET("/upcoming", reminderH.Upcoming)
	reminders.GET("/stats", reminderH.Stats)
	reminders.GET("/preferences", reminderH.GetPreferences)
	reminders.PUT("/preferences", reminderH.UpdatePreferences)
	reminders.PUT("/:id", reminderH.Update)
	reminders.DELETE("/:id", reminderH.Remove)
	reminders.POST("/:id/complete", reminderH.Complete)
	reminders.POST("/:id/snooze", reminderH.Snooze)

	moods := authed.Group("/moods")
	moods.POST("", moodH.Log)
	moods.GET("", moodH.History)
	moods.GET("/stats", moodH.Stats)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
