package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/servetrainer/backend/internal/api/handlers"
	"github.com/servetrainer/backend/internal/config"
	"github.com/servetrainer/backend/internal/middleware"
	"github.com/servetrainer/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Serve computation (public; history attributed when a token is present)
		sv := v1.Group("/serve", middleware.AuthOptional(cfg))
		{
			sv.POST("/solve", handlers.SolveServe(db, rdb, cfg))
			sv.POST("/trajectory", handlers.TrajectoryPreview(cfg))
		}

		// Accounts
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db, cfg))
			auth.POST("/login", handlers.Login(db, cfg))
		}

		// Saved presets and history (authenticated)
		player := v1.Group("/player", middleware.AuthRequired(cfg))
		{
			player.GET("/presets", handlers.ListPresets(db))
			player.POST("/presets", handlers.CreatePreset(db))
			player.PUT("/presets/:id", handlers.UpdatePreset(db))
			player.DELETE("/presets/:id", handlers.DeletePreset(db))
			player.GET("/history", handlers.GetSolveHistory(db))
		}

		// Live coaching sessions
		v1.GET("/session/:token/ws", ws.HandleSessionWebSocket(cfg))
	}
}
