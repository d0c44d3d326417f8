package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tbekele/cardparty-backend/config"
	"github.com/tbekele/cardparty-backend/controllers"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Catalog routes
	// ----------------------
	api.GET("/packs", controllers.ListPacks) // List card packs

	// ----------------------
	// Lobby routes
	// ----------------------
	// The listing route is not registered at all when disabled.
	if config.App.PublicLobbies {
		api.GET("/lobbies", controllers.PublicLobbies) // List joinable public lobbies
	}
}
