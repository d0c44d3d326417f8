package services

import (
	"testing"

	"github.com/tbekele/cardparty-backend/models"
)

// startedLobby returns a lobby with three players and a running game.
// Roster order is alice, bob, carol; alice starts as czar.
func startedLobby(t *testing.T) (*Lobby, map[string]*models.Player) {
	t.Helper()
	l, players := newTestLobby(t, "alice", "bob", "carol")
	if err := l.StartGame(players["alice"].ID); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	return l, players
}

// submitFirst submits the first n cards of the player's hand.
func submitFirst(t *testing.T, l *Lobby, p *models.Player, n int) {
	t.Helper()
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = p.Hand[i].ID
	}
	if err := l.SubmitCards(p.ID, ids); err != nil {
		t.Fatalf("SubmitCards(%s): %v", p.Name, err)
	}
}

func TestStartGame(t *testing.T) {
	l, players := newTestLobby(t, "alice", "bob", "carol")

	if err := l.StartGame(players["bob"].ID); err != ErrNotHost {
		t.Fatalf("non-host StartGame = %v, want %v", err, ErrNotHost)
	}

	if err := l.StartGame(players["alice"].ID); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if l.status != StatusPlaying {
		t.Fatalf("status = %s, want %s", l.status, StatusPlaying)
	}
	if l.prompt == nil {
		t.Fatal("no prompt drawn at game start")
	}
	if l.czarID != players["alice"].ID {
		t.Fatal("initial czar is not the first member")
	}
	for _, p := range l.players {
		if len(p.Hand) != models.HandSize {
			t.Fatalf("%s was dealt %d cards, want %d", p.Name, len(p.Hand), models.HandSize)
		}
	}

	if err := l.StartGame(players["alice"].ID); err != ErrGameInProgress {
		t.Fatalf("second StartGame = %v, want %v", err, ErrGameInProgress)
	}
}

func TestStartGameNeedsThreePlayers(t *testing.T) {
	l, players := newTestLobby(t, "alice", "bob")
	if err := l.StartGame(players["alice"].ID); err != ErrTooFewPlayers {
		t.Fatalf("StartGame with 2 players = %v, want %v", err, ErrTooFewPlayers)
	}
}

// Scenario: both non-czar players submit one card against a pick-1 prompt
// and the round flips to judging with two shuffled submissions.
func TestSubmissionsCompleteRound(t *testing.T) {
	l, players := startedLobby(t)

	submitFirst(t, l, players["bob"], 1)
	if l.status != StatusPlaying {
		t.Fatalf("status after first submission = %s, want %s", l.status, StatusPlaying)
	}

	submitFirst(t, l, players["carol"], 1)
	if l.status != StatusJudging {
		t.Fatalf("status after all submissions = %s, want %s", l.status, StatusJudging)
	}
	if len(l.submissions) != 2 {
		t.Fatalf("submission count = %d, want 2", len(l.submissions))
	}
	if len(players["bob"].Hand) != models.HandSize-1 {
		t.Fatalf("bob's hand = %d cards, want %d", len(players["bob"].Hand), models.HandSize-1)
	}
}

func TestSubmitRejections(t *testing.T) {
	l, players := startedLobby(t)
	bob := players["bob"]

	tests := []struct {
		name    string
		player  *models.Player
		cardIDs func() []string
		wantErr error
	}{
		{
			name:   "czar cannot submit",
			player: players["alice"],
			cardIDs: func() []string {
				return []string{players["alice"].Hand[0].ID}
			},
			wantErr: ErrCzarCannotSubmit,
		},
		{
			name:   "wrong pick count",
			player: bob,
			cardIDs: func() []string {
				return []string{bob.Hand[0].ID, bob.Hand[1].ID}
			},
			wantErr: ErrInvalidSubmission,
		},
		{
			name:    "unknown card id",
			player:  bob,
			cardIDs: func() []string { return []string{"not-a-card"} },
			wantErr: ErrInvalidCard,
		},
		{
			name:   "card from another hand",
			player: bob,
			cardIDs: func() []string {
				return []string{players["carol"].Hand[0].ID}
			},
			wantErr: ErrInvalidCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handBefore := len(tt.player.Hand)
			if err := l.SubmitCards(tt.player.ID, tt.cardIDs()); err != tt.wantErr {
				t.Fatalf("SubmitCards = %v, want %v", err, tt.wantErr)
			}
			if len(tt.player.Hand) != handBefore {
				t.Fatal("rejected submission mutated the hand")
			}
			if len(l.submissions) != 0 {
				t.Fatal("rejected submission was recorded")
			}
		})
	}

	t.Run("duplicate submission", func(t *testing.T) {
		submitFirst(t, l, bob, 1)
		if err := l.SubmitCards(bob.ID, []string{bob.Hand[0].ID}); err != ErrAlreadySubmitted {
			t.Fatalf("second submission = %v, want %v", err, ErrAlreadySubmitted)
		}
		if len(l.submissions) != 1 {
			t.Fatalf("submission count = %d, want 1", len(l.submissions))
		}
	})
}

func TestSelectWinner(t *testing.T) {
	l, players := startedLobby(t)
	submitFirst(t, l, players["bob"], 1)
	submitFirst(t, l, players["carol"], 1)

	czarID := players["alice"].ID
	if err := l.SelectWinner(players["bob"].ID, players["carol"].ID); err != ErrNotCzar {
		t.Fatalf("non-czar SelectWinner = %v, want %v", err, ErrNotCzar)
	}
	if err := l.SelectWinner(czarID, czarID); err != ErrNoSubmission {
		t.Fatalf("SelectWinner(czar) = %v, want %v", err, ErrNoSubmission)
	}
	if err := l.SelectWinner(czarID, "ghost"); err != ErrUnknownPlayer {
		t.Fatalf("SelectWinner(ghost) = %v, want %v", err, ErrUnknownPlayer)
	}

	promptText := l.prompt.Text
	if err := l.SelectWinner(czarID, players["bob"].ID); err != nil {
		t.Fatalf("SelectWinner: %v", err)
	}
	if players["bob"].Score != 1 {
		t.Fatalf("winner score = %d, want 1", players["bob"].Score)
	}
	if l.status != StatusRoundOver {
		t.Fatalf("status = %s, want %s", l.status, StatusRoundOver)
	}
	if l.lastWinner == nil || l.lastWinner.Name != "bob" || l.lastWinner.Prompt != promptText {
		t.Fatalf("winner snapshot unexpected: %+v", l.lastWinner)
	}

	if err := l.SelectWinner(czarID, players["carol"].ID); err != ErrWrongState {
		t.Fatalf("SelectWinner in round_over = %v, want %v", err, ErrWrongState)
	}
}

// Scenario: the winning pick reaches the threshold and the game ends; no
// further mutating actions are accepted.
func TestGameOverAtThreshold(t *testing.T) {
	l, players := startedLobby(t)

	l.mu.Lock()
	l.settings.WinThreshold = 1
	l.mu.Unlock()

	submitFirst(t, l, players["bob"], 1)
	submitFirst(t, l, players["carol"], 1)
	if err := l.SelectWinner(players["alice"].ID, players["bob"].ID); err != nil {
		t.Fatalf("SelectWinner: %v", err)
	}

	if l.status != StatusGameOver {
		t.Fatalf("status = %s, want %s", l.status, StatusGameOver)
	}
	if err := l.SubmitCards(players["carol"].ID, []string{players["carol"].Hand[0].ID}); err != ErrWrongState {
		t.Fatalf("submit after game over = %v, want %v", err, ErrWrongState)
	}
	if err := l.RequestNextRound(players["bob"].ID); err != ErrWrongState {
		t.Fatalf("next round after game over = %v, want %v", err, ErrWrongState)
	}
}

func playRound(t *testing.T, l *Lobby, players map[string]*models.Player, winner string) {
	t.Helper()
	czarID := l.czarID
	for _, p := range players {
		if p.ID == czarID {
			continue
		}
		submitFirst(t, l, p, l.prompt.Pick)
	}
	if err := l.SelectWinner(czarID, players[winner].ID); err != nil {
		t.Fatalf("SelectWinner: %v", err)
	}
}

func TestCzarRotationVisitsEveryone(t *testing.T) {
	l, players := startedLobby(t)
	idOf := func(id string) string {
		for name, p := range players {
			if p.ID == id {
				return name
			}
		}
		return "?"
	}

	var order []string
	for i := 0; i < 6; i++ {
		order = append(order, idOf(l.czarID))

		winner := "alice"
		if l.czarID == players["alice"].ID {
			winner = "bob"
		}
		playRound(t, l, players, winner)
		if err := l.RequestNextRound(players["alice"].ID); err != nil {
			t.Fatalf("RequestNextRound: %v", err)
		}
	}

	want := []string{"alice", "bob", "carol", "alice", "bob", "carol"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("czar order = %v, want %v", order, want)
		}
	}
}

// Every member's hand must be back at full size each round, and no card
// id may ever appear twice across hands, submissions and the prompt.
func TestCardsNeitherLostNorDuplicated(t *testing.T) {
	l, players := startedLobby(t)

	for round := 0; round < 5; round++ {
		seen := make(map[string]bool)
		check := func(id string) {
			if seen[id] {
				t.Fatalf("round %d: card id %s visible twice", round, id)
			}
			seen[id] = true
		}
		for _, p := range l.players {
			if len(p.Hand) != models.HandSize {
				t.Fatalf("round %d: %s holds %d cards, want %d", round, p.Name, len(p.Hand), models.HandSize)
			}
			for _, c := range p.Hand {
				check(c.ID)
			}
		}
		check(l.prompt.ID)

		playRound(t, l, players, "bob")
		if l.status == StatusGameOver {
			return
		}
		if err := l.RequestNextRound(players["bob"].ID); err != nil {
			t.Fatalf("RequestNextRound: %v", err)
		}
	}
}

// Scenario: the czar disconnects mid-round. A fresh round starts with the
// next member in roster order judging and hands topped back up.
func TestCzarDisconnectRestartsRound(t *testing.T) {
	l, players := newTestLobby(t, "alice", "bob", "carol", "dave")
	if err := l.StartGame(players["alice"].ID); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	submitFirst(t, l, players["bob"], 1)
	firstPrompt := l.prompt.ID

	l.RemovePlayer(players["alice"].ID)

	if l.status != StatusPlaying {
		t.Fatalf("status = %s, want %s", l.status, StatusPlaying)
	}
	if l.czarID != players["bob"].ID {
		t.Fatal("czar did not pass to the next member in roster order")
	}
	if l.prompt.ID == firstPrompt {
		t.Fatal("prompt was not replaced for the fresh round")
	}
	if len(l.submissions) != 0 {
		t.Fatal("stale submissions survived the fresh round")
	}
	for _, p := range l.players {
		if len(p.Hand) != models.HandSize {
			t.Fatalf("%s holds %d cards after restart, want %d", p.Name, len(p.Hand), models.HandSize)
		}
	}
}

func TestDisconnectBelowMinimumEndsGame(t *testing.T) {
	l, players := startedLobby(t)
	l.RemovePlayer(players["carol"].ID)

	if l.status != StatusGameOver {
		t.Fatalf("status = %s, want %s", l.status, StatusGameOver)
	}
}

func TestNonCzarDisconnectCompletesRound(t *testing.T) {
	l, players := newTestLobby(t, "alice", "bob", "carol", "dave")
	if err := l.StartGame(players["alice"].ID); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	submitFirst(t, l, players["bob"], 1)
	submitFirst(t, l, players["carol"], 1)

	// dave is the last holdout; once he leaves the round is complete.
	l.RemovePlayer(players["dave"].ID)

	if l.status != StatusJudging {
		t.Fatalf("status = %s, want %s", l.status, StatusJudging)
	}
	if len(l.submissions) != 2 {
		t.Fatalf("submission count = %d, want 2", len(l.submissions))
	}
}

// A stale round-over timer must be a no-op once the state has moved on.
func TestStaleAutoAdvanceIsNoOp(t *testing.T) {
	l, players := startedLobby(t)
	playRound(t, l, players, "bob")
	if l.status != StatusRoundOver {
		t.Fatalf("status = %s, want %s", l.status, StatusRoundOver)
	}

	// The state moves on before the timer fires.
	l.mu.Lock()
	l.endGameLocked("not enough players")
	l.mu.Unlock()

	l.autoAdvance()
	if l.status != StatusGameOver {
		t.Fatalf("stale timer mutated state: status = %s", l.status)
	}
}

func TestAutoAdvanceStartsNextRound(t *testing.T) {
	l, players := startedLobby(t)
	playRound(t, l, players, "bob")

	l.autoAdvance()
	if l.status != StatusPlaying {
		t.Fatalf("status = %s, want %s", l.status, StatusPlaying)
	}
	if l.czarID != players["bob"].ID {
		t.Fatal("czar did not advance to the next member")
	}
	if l.lastWinner != nil {
		t.Fatal("winner snapshot survived into the next round")
	}
}

func TestPromptExhaustionEndsGame(t *testing.T) {
	l, players := startedLobby(t)

	// Drain the black deck so the next round has no prompt left.
	l.mu.Lock()
	for {
		if _, ok := l.blacks.DrawOne(); !ok {
			break
		}
	}
	l.mu.Unlock()

	playRound(t, l, players, "bob")
	l.autoAdvance()

	if l.status != StatusGameOver {
		t.Fatalf("status = %s, want %s", l.status, StatusGameOver)
	}
}
