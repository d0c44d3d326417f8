package models

// Player is one member of a lobby. ID is a stable player id assigned at
// join time; it is distinct from the websocket connection id so a
// reconnect story does not have to restructure the roster.
type Player struct {
	ID         string
	Name       string
	Score      int
	Hand       []WhiteCard
	Submission []WhiteCard // nil until the player submits this round
}

// HasCard reports whether the player currently holds the card with the
// given session id.
func (p *Player) HasCard(cardID string) bool {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// TakeCard removes the card with the given id from the player's hand and
// returns it. The second result is false if the player does not hold it.
func (p *Player) TakeCard(cardID string) (WhiteCard, bool) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return WhiteCard{}, false
}

// Submission is one player's answer for the current prompt. Cards holds
// exactly the prompt's pick count, in the order the player chose.
type Submission struct {
	PlayerID   string      `json:"playerId"`
	PlayerName string      `json:"playerName"`
	Cards      []WhiteCard `json:"cards"`
}

// RoundWinner is the end-of-round snapshot shown until the next round
// starts.
type RoundWinner struct {
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
	Prompt string   `json:"prompt"`
}
