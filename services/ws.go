package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tbekele/cardparty-backend/config"
	"github.com/tbekele/cardparty-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == config.App.AllowedOrigin
	},
}

// HandleWebSocket upgrades the connection and runs the client until it
// disconnects. All game actions arrive over this socket.
func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	client := NewClient(conn)
	logger.Infof("[WS] new connection %s", client.ID)
	client.Run()
}
