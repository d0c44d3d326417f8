package services

import (
	"time"

	"github.com/tbekele/cardparty-backend/config"
	"github.com/tbekele/cardparty-backend/game"
	"github.com/tbekele/cardparty-backend/models"
	"github.com/tbekele/cardparty-backend/utils/logger"
)

// StartGame moves the lobby from waiting into its first round: builds the
// two card pools from the selected packs, deals every member a hand and
// seats the first member as czar. Host only, three players minimum.
func (l *Lobby) StartGame(playerID string) error {
	l.mu.Lock()
	if playerID != l.hostID {
		l.mu.Unlock()
		return ErrNotHost
	}
	if l.status != StatusWaiting {
		l.mu.Unlock()
		return ErrGameInProgress
	}
	if len(l.players) < models.MinPlayersToStart {
		l.mu.Unlock()
		return ErrTooFewPlayers
	}

	whites, blacks, err := GetPacks(l.settings.Packs)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	if len(whites) == 0 || len(blacks) == 0 {
		l.mu.Unlock()
		return ErrNotEnoughCards
	}
	l.whites = game.NewDeck(whites, l.rng)
	l.blacks = game.NewDeck(blacks, l.rng)

	logger.Infof("[Lobby %s] game started with %d players, %d white / %d black cards",
		l.Code, len(l.players), len(whites), len(blacks))
	l.startRoundLocked(0)
	l.mu.Unlock()

	l.broadcastState()
	l.sendHands()
	return nil
}

// startRoundLocked begins a fresh round with the member at czarIdx
// judging: pending submissions are cleared, the previous prompt is
// discarded, a new prompt is drawn and every hand is topped up. Ends the
// game instead when the black supply is exhausted.
func (l *Lobby) startRoundLocked(czarIdx int) {
	for _, p := range l.players {
		if p.Submission != nil {
			l.whites.Discard(p.Submission...)
			p.Submission = nil
		}
	}
	l.submissions = nil
	l.lastWinner = nil

	// Draw the replacement before discarding the old prompt, so a spent
	// supply is detected instead of endlessly recycling one card.
	prompt, ok := l.blacks.DrawOne()
	if !ok {
		l.endGameLocked("out of prompt cards")
		return
	}
	if l.prompt != nil {
		l.blacks.Discard(*l.prompt)
	}
	l.prompt = &prompt
	l.czarID = l.players[czarIdx].ID

	for _, p := range l.players {
		if need := models.HandSize - len(p.Hand); need > 0 {
			p.Hand = append(p.Hand, l.whites.Draw(need)...)
		}
	}

	l.status = StatusPlaying
}

// advanceRoundLocked rotates the czar to the next member in roster order
// and starts the round.
func (l *Lobby) advanceRoundLocked() {
	next := 0
	for i, p := range l.players {
		if p.ID == l.czarID {
			next = (i + 1) % len(l.players)
			break
		}
	}
	l.startRoundLocked(next)
}

// SubmitCards records a player's answer for the current prompt. The card
// ids must resolve to exactly the prompt's pick count of cards in that
// player's hand; any violation leaves the lobby untouched.
func (l *Lobby) SubmitCards(playerID string, cardIDs []string) error {
	l.mu.Lock()
	if l.status != StatusPlaying {
		l.mu.Unlock()
		return ErrWrongState
	}
	p := l.playerByIDLocked(playerID)
	if p == nil {
		l.mu.Unlock()
		return ErrUnknownPlayer
	}
	if playerID == l.czarID {
		l.mu.Unlock()
		return ErrCzarCannotSubmit
	}
	if p.Submission != nil {
		l.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if len(cardIDs) != l.prompt.Pick {
		l.mu.Unlock()
		return ErrInvalidSubmission
	}
	// Validate before mutating: every id owned, no id twice.
	seen := make(map[string]bool, len(cardIDs))
	for _, id := range cardIDs {
		if seen[id] || !p.HasCard(id) {
			l.mu.Unlock()
			return ErrInvalidCard
		}
		seen[id] = true
	}

	cards := make([]models.WhiteCard, 0, len(cardIDs))
	for _, id := range cardIDs {
		c, _ := p.TakeCard(id)
		cards = append(cards, c)
	}
	p.Submission = cards
	l.submissions = append(l.submissions, models.Submission{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Cards:      cards,
	})

	logger.Debugf("[Lobby %s] %s submitted (%d/%d)", l.Code, p.Name, len(l.submissions), l.nonCzarCountLocked())
	l.maybeBeginJudgingLocked()
	l.mu.Unlock()

	l.broadcastState()
	l.sendHand(playerID)
	return nil
}

func (l *Lobby) nonCzarCountLocked() int {
	n := 0
	for _, p := range l.players {
		if p.ID != l.czarID {
			n++
		}
	}
	return n
}

// maybeBeginJudgingLocked flips the round to judging once every non-czar
// member has submitted. The submission list is shuffled so its order
// gives away nothing about who answered first.
func (l *Lobby) maybeBeginJudgingLocked() {
	if l.status != StatusPlaying {
		return
	}
	if len(l.submissions) == 0 || len(l.submissions) < l.nonCzarCountLocked() {
		return
	}
	l.rng.Shuffle(len(l.submissions), func(i, j int) {
		l.submissions[i], l.submissions[j] = l.submissions[j], l.submissions[i]
	})
	l.status = StatusJudging
	logger.Infof("[Lobby %s] all submissions in, judging", l.Code)
}

// SelectWinner awards the round to one submission. Czar only, judging
// only. Moves every submitted card to the white discard pile and either
// finishes the game or schedules the next round.
func (l *Lobby) SelectWinner(actorID, winnerID string) error {
	l.mu.Lock()
	if l.status != StatusJudging {
		l.mu.Unlock()
		return ErrWrongState
	}
	if actorID != l.czarID {
		l.mu.Unlock()
		return ErrNotCzar
	}
	winner := l.playerByIDLocked(winnerID)
	if winner == nil {
		l.mu.Unlock()
		return ErrUnknownPlayer
	}
	var winning *models.Submission
	for i := range l.submissions {
		if l.submissions[i].PlayerID == winnerID {
			winning = &l.submissions[i]
			break
		}
	}
	if winning == nil {
		l.mu.Unlock()
		return ErrNoSubmission
	}

	winner.Score++
	texts := make([]string, len(winning.Cards))
	for i, c := range winning.Cards {
		texts[i] = c.Text
	}
	l.lastWinner = &models.RoundWinner{
		Name:   winner.Name,
		Cards:  texts,
		Prompt: l.prompt.Text,
	}

	for _, s := range l.submissions {
		l.whites.Discard(s.Cards...)
	}
	l.submissions = nil
	for _, p := range l.players {
		p.Submission = nil
	}

	won := winner.Score >= l.settings.WinThreshold
	if won {
		logger.Infof("[Lobby %s] %s wins the game with %d points", l.Code, winner.Name, winner.Score)
		l.endGameLocked(winner.Name + " wins!")
	} else {
		logger.Infof("[Lobby %s] %s wins the round (%d points)", l.Code, winner.Name, winner.Score)
		l.status = StatusRoundOver
		go func() {
			time.Sleep(config.App.RoundDelay)
			l.autoAdvance()
		}()
	}
	l.mu.Unlock()

	l.broadcastState()
	return nil
}

// autoAdvance fires after the round-over delay. A manual next_round or a
// disconnect-triggered game over may have moved the state on already, so
// a stale timer must be a no-op.
func (l *Lobby) autoAdvance() {
	l.mu.Lock()
	if l.status != StatusRoundOver {
		l.mu.Unlock()
		return
	}
	l.advanceRoundLocked()
	l.mu.Unlock()

	l.broadcastState()
	l.sendHands()
}

// RequestNextRound starts the next round from round_over without waiting
// for the timer. Any member may trigger it; a stuck round should never
// need the host.
func (l *Lobby) RequestNextRound(playerID string) error {
	l.mu.Lock()
	if l.playerByIDLocked(playerID) == nil {
		l.mu.Unlock()
		return ErrUnknownPlayer
	}
	if l.status != StatusRoundOver {
		l.mu.Unlock()
		return ErrWrongState
	}
	l.advanceRoundLocked()
	l.mu.Unlock()

	l.broadcastState()
	l.sendHands()
	return nil
}

// endGameLocked is the terminal transition. reason is shown to players
// in the game_over notice.
func (l *Lobby) endGameLocked(reason string) {
	l.status = StatusGameOver
	l.prompt = nil
	l.czarID = ""
	l.submissions = nil
	logger.Infof("[Lobby %s] game over: %s", l.Code, reason)

	go l.broadcastGameOver(reason)
}
