package services

import (
	"encoding/json"

	"github.com/tbekele/cardparty-backend/models"
	"github.com/tbekele/cardparty-backend/utils/logger"
)

// playerView is the member row every client may see. Hands stay private.
type playerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsCzar    bool   `json:"isCzar"`
	Submitted bool   `json:"submitted"`
}

// lobbyState is the public projection broadcast after every
// state-affecting action.
type lobbyState struct {
	Type        string              `json:"type"`
	Code        string              `json:"code"`
	Status      Status              `json:"status"`
	HostID      string              `json:"hostId"`
	Settings    models.Settings     `json:"settings"`
	Players     []playerView        `json:"players"`
	Prompt      *models.BlackCard   `json:"prompt"`
	Submissions []models.Submission `json:"submissions,omitempty"` // judging only
	LastWinner  *models.RoundWinner `json:"lastWinner,omitempty"`
	CzarID      string              `json:"czarId,omitempty"`
	CzarName    string              `json:"czarName,omitempty"`
}

func (l *Lobby) buildStateLocked() lobbyState {
	state := lobbyState{
		Type:       "state",
		Code:       l.Code,
		Status:     l.status,
		HostID:     l.hostID,
		Settings:   l.settings,
		Prompt:     l.prompt,
		LastWinner: l.lastWinner,
		CzarID:     l.czarID,
	}
	for _, p := range l.players {
		state.Players = append(state.Players, playerView{
			ID:        p.ID,
			Name:      p.Name,
			Score:     p.Score,
			IsCzar:    p.ID == l.czarID,
			Submitted: p.Submission != nil,
		})
		if p.ID == l.czarID {
			state.CzarName = p.Name
		}
	}
	// Submissions become public only once everyone is in, already
	// shuffled.
	if l.status == StatusJudging {
		state.Submissions = append([]models.Submission(nil), l.submissions...)
	}
	return state
}

func (l *Lobby) broadcastState() {
	l.mu.RLock()
	state := l.buildStateLocked()
	clients := make([]*Client, 0, len(l.clients))
	for _, c := range l.clients {
		clients = append(clients, c)
	}
	l.mu.RUnlock()

	b, _ := json.Marshal(state)
	for _, c := range clients {
		c.trySend(b)
	}
}

// sendHand pushes a player's private hand to their connection.
func (l *Lobby) sendHand(playerID string) {
	l.mu.RLock()
	p := l.playerByIDLocked(playerID)
	c := l.clients[playerID]
	var hand []models.WhiteCard
	if p != nil {
		hand = append(hand, p.Hand...)
	}
	l.mu.RUnlock()

	if p == nil || c == nil {
		return
	}
	b, _ := json.Marshal(map[string]any{
		"type":  "hand",
		"cards": hand,
	})
	c.trySend(b)
}

// sendHands pushes every member their hand, after deals and top-ups.
func (l *Lobby) sendHands() {
	l.mu.RLock()
	ids := make([]string, 0, len(l.players))
	for _, p := range l.players {
		ids = append(ids, p.ID)
	}
	l.mu.RUnlock()

	for _, id := range ids {
		l.sendHand(id)
	}
}

func (l *Lobby) broadcastGameOver(reason string) {
	l.mu.RLock()
	clients := make([]*Client, 0, len(l.clients))
	for _, c := range l.clients {
		clients = append(clients, c)
	}
	l.mu.RUnlock()

	b, _ := json.Marshal(map[string]string{
		"type":   "game_over",
		"reason": reason,
	})
	for _, c := range clients {
		c.trySend(b)
	}
}

// notifyError reports an action failure to the acting connection only.
func notifyError(c *Client, err error) {
	if c == nil {
		return
	}
	b, _ := json.Marshal(map[string]string{
		"type":    "game_error",
		"message": err.Error(),
	})
	c.trySend(b)
}

func notifyInfo(c *Client, message string) {
	if c == nil {
		return
	}
	b, _ := json.Marshal(map[string]string{
		"type":    "info",
		"message": message,
	})
	c.trySend(b)
}

func send(c *Client, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("marshal outbound payload: %v", err)
		return
	}
	c.trySend(b)
}
