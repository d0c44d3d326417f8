package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbekele/cardparty-backend/services"
)

// PublicLobbies returns joinable public sessions
func PublicLobbies(c *gin.Context) {
	c.JSON(http.StatusOK, services.PublicLobbies())
}
