package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbekele/cardparty-backend/services"
)

// ListPacks returns the card pack catalog summary
func ListPacks(c *gin.Context) {
	c.JSON(http.StatusOK, services.ListPacks())
}
