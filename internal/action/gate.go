// Package action serializes the local player's turn actions: at most one
// action is in flight at a time, and submissions are gated on turn ownership
// and legality before the server is contacted.
package action

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/strataseven/sevens-client/internal/apperror"
	"github.com/strataseven/sevens-client/internal/entity"
	"github.com/strataseven/sevens-client/internal/gamesync"
	"github.com/strataseven/sevens-client/internal/realtime"
)

type Kind string

const (
	KindPlay Kind = "play"
	KindPass Kind = "pass"
)

// PendingAction marks an outstanding submission. Its absence means the player
// may act.
type PendingAction struct {
	Kind        Kind
	Card        entity.Card
	SubmittedAt time.Time
}

type submitter interface {
	PlayCard(ctx context.Context, roomCode, playerID string, card entity.Card) (*entity.GameState, error)
	PassTurn(ctx context.Context, roomCode, playerID string) (*entity.GameState, error)
}

type coordinator interface {
	Snapshot() gamesync.Snapshot
	ApplyAuthoritative(state *entity.GameState)
}

type Gate struct {
	logger      *slog.Logger
	client      submitter
	coordinator coordinator
	channel     realtime.Channel
	roomCode    string
	playerID    string

	mu      sync.Mutex
	pending *PendingAction
}

func New(logger *slog.Logger, client submitter, coordinator coordinator, channel realtime.Channel, roomCode, playerID string) *Gate {
	return &Gate{
		logger:      logger.With("component", "action", "room", roomCode),
		client:      client,
		coordinator: coordinator,
		channel:     channel,
		roomCode:    roomCode,
		playerID:    playerID,
	}
}

// PlayCard validates the advisory preconditions, submits the play and feeds
// the authoritative response back into the coordinator. Server rejections are
// returned verbatim; local state is never rolled back because it was never
// optimistically changed.
func (that *Gate) PlayCard(ctx context.Context, card entity.Card) (*entity.GameState, error) {
	if err := that.begin(KindPlay, card); err != nil {
		return nil, err
	}
	defer that.clearPending()

	state, err := that.client.PlayCard(ctx, that.roomCode, that.playerID, card)
	if err != nil {
		return nil, fmt.Errorf("play rejected: %w", err)
	}

	that.accept(ctx, state)

	return state, nil
}

// PassTurn submits a pass. Passing is only legal with zero playable cards;
// that check is the server's, not ours, so the gate only verifies turn
// ownership locally.
func (that *Gate) PassTurn(ctx context.Context) (*entity.GameState, error) {
	if err := that.begin(KindPass, entity.Card{}); err != nil {
		return nil, err
	}
	defer that.clearPending()

	state, err := that.client.PassTurn(ctx, that.roomCode, that.playerID)
	if err != nil {
		return nil, fmt.Errorf("pass rejected: %w", err)
	}

	that.accept(ctx, state)

	return state, nil
}

// Pending returns a copy of the outstanding action, if any.
func (that *Gate) Pending() *PendingAction {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.pending == nil {
		return nil
	}

	pending := *that.pending

	return &pending
}

// begin checks the preconditions in order and marks the action pending. All
// checks happen before any server contact.
func (that *Gate) begin(kind Kind, card entity.Card) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.pending != nil {
		return apperror.ErrActionInProgress
	}

	snapshot := that.coordinator.Snapshot()

	if snapshot.State == nil {
		return apperror.ErrGameIsNotStarted
	}

	if snapshot.State.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !IsPlayersTurn(snapshot.State, that.playerID) {
		return apperror.ErrNotYourTurn
	}

	if kind == KindPlay && !IsPlayable(snapshot.PlayableCards, card) {
		return apperror.ErrNotPlayable
	}

	that.pending = &PendingAction{
		Kind:        kind,
		Card:        card,
		SubmittedAt: time.Now(),
	}

	return nil
}

func (that *Gate) clearPending() {
	that.mu.Lock()
	that.pending = nil
	that.mu.Unlock()
}

// accept feeds the response state to the coordinator as a push-equivalent
// candidate and fans it out to peers, which is faster than their next poll.
// The publish is best-effort: peers recover via polling if it is lost.
func (that *Gate) accept(ctx context.Context, state *entity.GameState) {
	that.coordinator.ApplyAuthoritative(state)

	if err := that.channel.Publish(ctx, that.roomCode, state); err != nil {
		that.logger.Error("failed to publish own update, peers will poll", "error", err)
	}
}
