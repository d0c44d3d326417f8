package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tbekele/cardparty-backend/config"
	"github.com/tbekele/cardparty-backend/routes"
	"github.com/tbekele/cardparty-backend/services"
	"github.com/tbekele/cardparty-backend/utils/logger"
)

// setupRouter initializes Gin routes and middleware
func setupRouter() *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.App.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket game endpoint
	r.GET("/ws", services.HandleWebSocket)

	return r
}

func main() {
	// Load env variables
	cfg := config.Load()

	// Load the card pack catalog; startup fails on a broken index.
	services.LoadPacks(cfg.PacksFile)

	// Setup Gin router
	router := setupRouter()

	// Start server
	logger.Infof("Card party backend starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
