package services

import "errors"

// Action failures reported back to the acting connection. None of these
// mutate lobby state.
var (
	ErrLobbyNotFound     = errors.New("lobby not found")
	ErrLobbyFull         = errors.New("lobby is full")
	ErrGameInProgress    = errors.New("game already in progress")
	ErrDuplicateName     = errors.New("that name is already taken")
	ErrEmptyName         = errors.New("a display name is required")
	ErrNotHost           = errors.New("only the host can do that")
	ErrNotCzar           = errors.New("only the card czar can do that")
	ErrWrongState        = errors.New("action not allowed in the current game state")
	ErrTooFewPlayers     = errors.New("not enough players to start")
	ErrCzarCannotSubmit  = errors.New("the card czar does not submit cards")
	ErrAlreadySubmitted  = errors.New("you already submitted this round")
	ErrInvalidSubmission = errors.New("wrong number of cards for this prompt")
	ErrInvalidCard       = errors.New("submitted card is not in your hand")
	ErrUnknownPlayer     = errors.New("no such player in this lobby")
	ErrNoSubmission      = errors.New("that player has not submitted")
	ErrNotEnoughCards    = errors.New("selected packs do not have enough cards")
	ErrListingDisabled   = errors.New("public lobby listing is disabled")
	ErrNotInLobby        = errors.New("you are not in a lobby")
)
