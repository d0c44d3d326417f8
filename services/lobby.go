package services

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbekele/cardparty-backend/config"
	"github.com/tbekele/cardparty-backend/game"
	"github.com/tbekele/cardparty-backend/models"
	"github.com/tbekele/cardparty-backend/utils/logger"
)

// Status is the round state machine's current state.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusJudging   Status = "judging"
	StatusRoundOver Status = "round_over"
	StatusGameOver  Status = "game_over"
)

// Lobby is one isolated game session. All mutable state is guarded by mu;
// handlers release the lock before broadcasting.
type Lobby struct {
	Code string

	mu          sync.RWMutex
	players     []*models.Player   // order drives czar rotation
	clients     map[string]*Client // playerID -> connection
	hostID      string
	status      Status
	settings    models.Settings
	whites      *game.Deck[models.WhiteCard]
	blacks      *game.Deck[models.BlackCard]
	prompt      *models.BlackCard
	czarID      string
	submissions []models.Submission
	lastWinner  *models.RoundWinner
	rng         *rand.Rand
}

var (
	Lobbies   = make(map[string]*Lobby)
	LobbiesMu sync.RWMutex
)

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generateCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			code[i] = codeChars[rand.Intn(len(codeChars))]
			continue
		}
		code[i] = codeChars[n.Int64()]
	}
	return string(code)
}

// CreateLobby allocates a collision-free code and registers an empty lobby
// in the waiting state.
func CreateLobby(settings models.Settings) (*Lobby, error) {
	normalizeSettings(&settings)
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	l := &Lobby{
		clients:  make(map[string]*Client),
		status:   StatusWaiting,
		settings: settings,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	LobbiesMu.Lock()
	for {
		code := generateCode(config.App.LobbyCodeLen)
		if _, taken := Lobbies[code]; !taken {
			l.Code = code
			Lobbies[code] = l
			break
		}
	}
	LobbiesMu.Unlock()

	logger.Infof("[Lobby %s] created", l.Code)
	return l, nil
}

// GetLobby looks up a session by code.
func GetLobby(code string) (*Lobby, bool) {
	LobbiesMu.RLock()
	defer LobbiesMu.RUnlock()
	l, ok := Lobbies[strings.ToUpper(code)]
	return l, ok
}

func removeLobby(code string) {
	LobbiesMu.Lock()
	delete(Lobbies, code)
	LobbiesMu.Unlock()
	logger.Infof("[Lobby %s] torn down", code)
}

// LobbySummary is one row of the public lobby listing.
type LobbySummary struct {
	Code       string `json:"code"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
}

// PublicLobbies lists joinable public sessions.
func PublicLobbies() []LobbySummary {
	LobbiesMu.RLock()
	defer LobbiesMu.RUnlock()

	out := []LobbySummary{}
	for _, l := range Lobbies {
		l.mu.RLock()
		if l.settings.Public && l.status == StatusWaiting && len(l.players) < l.settings.MaxPlayers {
			out = append(out, LobbySummary{
				Code:       l.Code,
				Players:    len(l.players),
				MaxPlayers: l.settings.MaxPlayers,
			})
		}
		l.mu.RUnlock()
	}
	return out
}

func normalizeSettings(s *models.Settings) {
	if s.WinThreshold < 1 {
		s.WinThreshold = models.DefaultWinThreshold
	}
	if s.MaxPlayers < models.MinPlayersToStart {
		s.MaxPlayers = models.DefaultMaxPlayers
	}
}

func validateSettings(s models.Settings) error {
	if _, _, err := GetPacks(s.Packs); err != nil {
		return err
	}
	return nil
}

// -------------------- Roster --------------------

// Join adds a player to the lobby. The first member becomes host. client
// may be nil in tests.
func (l *Lobby) Join(c *Client, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	l.mu.Lock()
	if l.status != StatusWaiting {
		l.mu.Unlock()
		return nil, ErrGameInProgress
	}
	if len(l.players) >= l.settings.MaxPlayers {
		l.mu.Unlock()
		return nil, ErrLobbyFull
	}
	for _, p := range l.players {
		if strings.EqualFold(p.Name, name) {
			l.mu.Unlock()
			return nil, ErrDuplicateName
		}
	}

	p := &models.Player{ID: uuid.NewString(), Name: name}
	l.players = append(l.players, p)
	if c != nil {
		l.clients[p.ID] = c
	}
	if l.hostID == "" {
		l.hostID = p.ID
	}
	total := len(l.players)
	l.mu.Unlock()

	logger.Infof("[Lobby %s] %s joined (total=%d)", l.Code, name, total)
	l.broadcastState()
	return p, nil
}

// RemovePlayer takes a member out of the roster and runs the recovery
// branches: host reassignment, czar replacement, minimum-player check.
// Called on disconnect.
func (l *Lobby) RemovePlayer(playerID string) {
	l.mu.Lock()
	idx := -1
	for i, p := range l.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		l.mu.Unlock()
		return
	}

	leaving := l.players[idx]
	wasCzar := l.czarID == playerID
	l.players = append(l.players[:idx], l.players[idx+1:]...)
	delete(l.clients, playerID)

	if len(l.players) == 0 {
		l.mu.Unlock()
		removeLobby(l.Code)
		return
	}

	var newHost *Client
	if l.hostID == playerID {
		l.hostID = l.players[0].ID
		newHost = l.clients[l.hostID]
		logger.Infof("[Lobby %s] host migrated to %s", l.Code, l.players[0].Name)
	}

	midGame := l.status == StatusPlaying || l.status == StatusJudging || l.status == StatusRoundOver
	if midGame {
		// The leaver's cards go back into circulation.
		l.whites.Discard(leaving.Hand...)
		l.dropSubmissionLocked(playerID)

		switch {
		case len(l.players) < models.MinPlayersToStart:
			l.endGameLocked("not enough players")
		case wasCzar:
			// The member now sitting at the czar's old index is the next
			// one in roster order.
			logger.Infof("[Lobby %s] czar %s left, starting fresh round", l.Code, leaving.Name)
			l.startRoundLocked(idx % len(l.players))
		default:
			l.maybeBeginJudgingLocked()
		}
	}
	l.mu.Unlock()

	logger.Infof("[Lobby %s] %s left", l.Code, leaving.Name)
	if newHost != nil {
		notifyInfo(newHost, "You are now the host.")
	}
	l.broadcastState()
	l.sendHands()
}

// UpdateSettings replaces the lobby settings. Host only, before the game
// starts.
func (l *Lobby) UpdateSettings(playerID string, s models.Settings) error {
	normalizeSettings(&s)

	l.mu.Lock()
	if playerID != l.hostID {
		l.mu.Unlock()
		return ErrNotHost
	}
	if l.status != StatusWaiting {
		l.mu.Unlock()
		return ErrGameInProgress
	}
	if s.MaxPlayers < len(l.players) {
		l.mu.Unlock()
		return ErrLobbyFull
	}
	if err := validateSettings(s); err != nil {
		l.mu.Unlock()
		return err
	}
	l.settings = s
	l.mu.Unlock()

	l.broadcastState()
	return nil
}

// Settings returns a copy of the current lobby settings.
func (l *Lobby) Settings() models.Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}

func (l *Lobby) playerByIDLocked(playerID string) *models.Player {
	for _, p := range l.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// dropSubmissionLocked removes a player's pending submission from the
// round and discards its cards.
func (l *Lobby) dropSubmissionLocked(playerID string) {
	for i, s := range l.submissions {
		if s.PlayerID == playerID {
			l.whites.Discard(s.Cards...)
			l.submissions = append(l.submissions[:i], l.submissions[i+1:]...)
			return
		}
	}
}
