package services

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tbekele/cardparty-backend/config"
	"github.com/tbekele/cardparty-backend/models"
	"github.com/tbekele/cardparty-backend/utils/logger"
)

// Client is one websocket connection. ID is the connection id; playerID
// is set once the connection creates or joins a lobby and stays distinct
// from it. lobby and playerID are only touched from the read pump.
type Client struct {
	ID       string
	playerID string
	lobby    *Lobby
	conn     *websocket.Conn
	send     chan []byte
	once     sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// trySend queues a frame without ever blocking a game handler. Slow
// clients lose frames; the next state broadcast catches them up.
func (c *Client) trySend(b []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf("[Client %s] send after close dropped", c.ID)
		}
	}()
	select {
	case c.send <- b:
	default:
		logger.Infof("[Client %s] dropping frame, send buffer full", c.ID)
	}
}

// inbound is the envelope for every client action.
type inbound struct {
	Action   string           `json:"action"`
	Name     string           `json:"name"`
	Code     string           `json:"code"`
	Settings *models.Settings `json:"settings"`
	CardIDs  []string         `json:"cardIds"`
	PlayerID string           `json:"playerId"`
}

// Run starts the read/write pumps and blocks until the connection drops.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		if c.lobby != nil {
			c.lobby.RemovePlayer(c.playerID)
		}
		c.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Client %s] disconnected normally", c.ID)
			} else {
				logger.Debugf("[Client %s] read error: %v", c.ID, err)
			}
			return
		}

		func(msg []byte) {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("[Client %s] recovered from panic: %v", c.ID, r)
				}
			}()
			c.handleMessage(msg)
		}(message)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Client %s] write error: %v", c.ID, err)
			return
		}
	}
}

func (c *Client) handleMessage(msg []byte) {
	var in inbound
	if err := json.Unmarshal(msg, &in); err != nil {
		logger.Debugf("[Client %s] invalid message: %v", c.ID, err)
		return
	}

	switch in.Action {
	case "get_pack_list":
		send(c, map[string]any{"type": "pack_list", "packs": ListPacks()})

	case "get_public_lobbies":
		if !config.App.PublicLobbies {
			notifyError(c, ErrListingDisabled)
			return
		}
		send(c, map[string]any{"type": "public_lobbies", "lobbies": PublicLobbies()})

	case "create_lobby":
		c.handleCreate(in)

	case "join_lobby":
		c.handleJoin(in)

	case "update_settings":
		if c.lobby == nil || in.Settings == nil {
			notifyError(c, ErrNotInLobby)
			return
		}
		if err := c.lobby.UpdateSettings(c.playerID, *in.Settings); err != nil {
			notifyError(c, err)
		}

	case "start_game":
		if c.lobby == nil {
			notifyError(c, ErrNotInLobby)
			return
		}
		if err := c.lobby.StartGame(c.playerID); err != nil {
			notifyError(c, err)
		}

	case "submit_cards":
		if c.lobby == nil {
			notifyError(c, ErrNotInLobby)
			return
		}
		if err := c.lobby.SubmitCards(c.playerID, in.CardIDs); err != nil {
			notifyError(c, err)
		}

	case "select_winner":
		if c.lobby == nil {
			notifyError(c, ErrNotInLobby)
			return
		}
		if err := c.lobby.SelectWinner(c.playerID, in.PlayerID); err != nil {
			notifyError(c, err)
		}

	case "next_round":
		if c.lobby == nil {
			notifyError(c, ErrNotInLobby)
			return
		}
		if err := c.lobby.RequestNextRound(c.playerID); err != nil {
			notifyError(c, err)
		}

	default:
		logger.Debugf("[Client %s] unknown action: %q", c.ID, in.Action)
	}
}

func (c *Client) handleCreate(in inbound) {
	if c.lobby != nil {
		notifyError(c, ErrGameInProgress)
		return
	}
	settings := models.DefaultSettings()
	if in.Settings != nil {
		settings = *in.Settings
	}
	l, err := CreateLobby(settings)
	if err != nil {
		notifyError(c, err)
		return
	}
	p, err := l.Join(c, in.Name)
	if err != nil {
		// A fresh lobby only rejects a join on a bad name; drop it again.
		removeLobby(l.Code)
		notifyError(c, err)
		return
	}
	c.lobby = l
	c.playerID = p.ID
	send(c, map[string]any{
		"type":     "lobby_created",
		"code":     l.Code,
		"playerId": p.ID,
		"settings": l.Settings(),
		"packs":    ListPacks(),
	})
	l.sendHand(p.ID)
}

func (c *Client) handleJoin(in inbound) {
	if c.lobby != nil {
		notifyError(c, ErrGameInProgress)
		return
	}
	l, ok := GetLobby(in.Code)
	if !ok {
		notifyError(c, ErrLobbyNotFound)
		return
	}
	p, err := l.Join(c, in.Name)
	if err != nil {
		notifyError(c, err)
		return
	}
	c.lobby = l
	c.playerID = p.ID
	send(c, map[string]any{
		"type":     "lobby_joined",
		"code":     l.Code,
		"playerId": p.ID,
		"settings": l.Settings(),
		"packs":    ListPacks(),
	})
}
