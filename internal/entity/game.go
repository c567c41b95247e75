package entity

import (
	"errors"
	"fmt"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

var (
	ErrNoGameState     = errors.New("room has no game state")
	ErrBadPlayerIndex  = errors.New("current player index out of range")
	ErrIncompleteBoard = errors.New("board is missing a suit")
	ErrNoPlayers       = errors.New("game has no players")
)

// SuitStack is the played run of one suit. The server guarantees the run is
// contiguous from Low..7..High once the pivot is played; the client only
// renders what it is given and never repairs gaps.
type SuitStack struct {
	Low      *int   `json:"low"`
	High     *int   `json:"high"`
	HasSeven bool   `json:"has_seven"`
	Cards    []Card `json:"cards"`
}

type Board map[Suit]*SuitStack

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"is_host"`
	IsAI   bool   `json:"is_ai,omitempty"`
	Hand   []Card `json:"hand"`
}

// GameState is the server-owned shared state. It is replaced wholesale on
// every accepted update; the client never constructs or patches one.
type GameState struct {
	Board              Board     `json:"board"`
	CurrentPlayerIndex int       `json:"current_player_index"`
	Players            []*Player `json:"players"`
	Winner             string    `json:"winner,omitempty"`
	LastAction         string    `json:"last_action"`
	TurnNumber         int       `json:"turn_number"`
	UpdatedAt          int64     `json:"updated_at"`
}

type Room struct {
	RoomCode  string     `json:"room_code"`
	HostName  string     `json:"host_name"`
	Players   []*Player  `json:"players"`
	GameState *GameState `json:"game_state,omitempty"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"created_at,omitempty"`
}

// RoomJoin is the create/join response: the caller's server-assigned identity
// plus the room snapshot.
type RoomJoin struct {
	RoomCode string  `json:"room_code"`
	PlayerID string  `json:"player_id"`
	Player   *Player `json:"player"`
	Room     *Room   `json:"room"`
}

// Validate is the single validating decode step for a wire payload. Everything
// past this point handles a fully-formed state, never optional fields.
func (that *GameState) Validate() error {
	if len(that.Players) == 0 {
		return ErrNoPlayers
	}

	if that.CurrentPlayerIndex < 0 || that.CurrentPlayerIndex >= len(that.Players) {
		return fmt.Errorf("%w: %d of %d", ErrBadPlayerIndex, that.CurrentPlayerIndex, len(that.Players))
	}

	for _, suit := range Suits() {
		if that.Board[suit] == nil {
			return fmt.Errorf("%w: %s", ErrIncompleteBoard, suit)
		}
	}

	return nil
}

// IsFinished reports the terminal condition: a non-empty winner accepts no
// further actions.
func (that *GameState) IsFinished() bool {
	return that.Winner != ""
}

func (that *GameState) CurrentPlayer() *Player {
	return that.Players[that.CurrentPlayerIndex]
}

func (that *GameState) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// IsPlayersTurn reports whether the current player index resolves to playerID.
func (that *GameState) IsPlayersTurn(playerID string) bool {
	return that.CurrentPlayer().ID == playerID
}

// AllOpponentsAI reports whether every seat other than playerID is automated.
// Single-human games poll at the faster cadence.
func (that *GameState) AllOpponentsAI(playerID string) bool {
	for _, player := range that.Players {
		if player.ID == playerID {
			continue
		}

		if !player.IsAI {
			return false
		}
	}

	return true
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}
