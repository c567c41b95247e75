package apperror

import "errors"

var (
	// Server-authoritative rejections. The server's detail string is preserved
	// by the caller through error wrapping.
	ErrIllegalMove      = errors.New("illegal move")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrHasPlayableCards = errors.New("player has playable cards")

	// Local precondition failures, never sent to the server.
	ErrActionInProgress = errors.New("action already in progress")
	ErrNotPlayable      = errors.New("card is not playable")

	// Transport and room lifecycle.
	ErrNetwork          = errors.New("network error")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNameTaken        = errors.New("name already taken in this room")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameFinished     = errors.New("game is already finished")
)
