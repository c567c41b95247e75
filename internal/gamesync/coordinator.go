// Package gamesync keeps the local copy of the server-owned game state
// correct and current under two independent, unreliable update channels:
// periodic polling and asynchronous push. Both feed candidates through one
// reconciliation rule, so the two channels racing or replaying each other is
// harmless.
package gamesync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/strataseven/sevens-client/internal/entity"
	"github.com/strataseven/sevens-client/internal/realtime"
)

const (
	PhaseUninitialized = "uninitialized"
	PhaseSyncing       = "syncing"
	PhaseSynced        = "synced"
	PhaseTerminated    = "terminated"
)

type remoteClient interface {
	GetRoom(ctx context.Context, roomCode string) (*entity.Room, error)
	PlayableCards(ctx context.Context, roomCode, playerID string) ([]entity.Card, error)
}

// Snapshot is a consistent, read-only view of the sync state. The state
// pointer is safe to share because accepted states are replaced wholesale,
// never mutated in place.
type Snapshot struct {
	State             *entity.GameState
	LastSeenUpdatedAt int64
	IsSyncing         bool
	PlayableCards     []entity.Card
	Phase             string
}

// Coordinator is the single writer of the locally held GameState.
type Coordinator struct {
	logger   *slog.Logger
	client   remoteClient
	channel  realtime.Channel
	roomCode string
	playerID string

	slowInterval time.Duration
	fastInterval time.Duration

	onChange func(Snapshot)

	mu           sync.Mutex
	phase        string
	state        *entity.GameState
	lastSeen     int64
	syncing      bool
	playable     []entity.Card
	subscription realtime.Subscription

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a coordinator for one room session. onChange is invoked with a
// consistent snapshot after every accepted update and playable refresh; it may
// be nil.
func New(logger *slog.Logger, client remoteClient, channel realtime.Channel, roomCode, playerID string, slowInterval, fastInterval time.Duration, onChange func(Snapshot)) *Coordinator {
	return &Coordinator{
		logger:       logger.With("component", "gamesync", "room", roomCode),
		client:       client,
		channel:      channel,
		roomCode:     roomCode,
		playerID:     playerID,
		slowInterval: slowInterval,
		fastInterval: fastInterval,
		onChange:     onChange,
		phase:        PhaseUninitialized,
	}
}

// Start performs one immediate pull, opens the push subscription and arms the
// recurring poll. Polling is the availability fallback: a dead push channel
// never blocks freshness.
func (that *Coordinator) Start(ctx context.Context) {
	that.mu.Lock()
	if that.phase != PhaseUninitialized {
		that.mu.Unlock()
		return
	}
	that.phase = PhaseSyncing
	that.ctx, that.cancel = context.WithCancel(ctx)
	that.done = make(chan struct{})
	that.mu.Unlock()

	that.pullOnce()
	that.subscribe()

	go that.pollLoop()
}

// Stop cancels the poll, closes the subscription and discards the sync state.
// It is the only cancellation primitive; once it returns no further candidate
// can be accepted.
func (that *Coordinator) Stop() {
	that.mu.Lock()
	if that.phase == PhaseTerminated && that.cancel == nil {
		that.mu.Unlock()
		return
	}

	that.phase = PhaseTerminated
	subscription := that.subscription
	that.subscription = nil
	cancel := that.cancel
	that.cancel = nil
	done := that.done

	that.state = nil
	that.lastSeen = 0
	that.playable = nil
	that.syncing = false
	that.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if subscription != nil {
		if err := subscription.Unsubscribe(); err != nil {
			that.logger.Error("failed to unsubscribe", "error", err)
		}
	}

	if done != nil {
		<-done
	}
}

// ApplyAuthoritative feeds a state carried by the player's own action
// response through the same acceptance rule as pull and push candidates, so
// an older snapshot arriving late can never overwrite it.
func (that *Coordinator) ApplyAuthoritative(state *entity.GameState) {
	that.offer(state, "action")
}

// Snapshot returns the current view.
func (that *Coordinator) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

func (that *Coordinator) snapshotLocked() Snapshot {
	playable := make([]entity.Card, len(that.playable))
	copy(playable, that.playable)

	return Snapshot{
		State:             that.state,
		LastSeenUpdatedAt: that.lastSeen,
		IsSyncing:         that.syncing,
		PlayableCards:     playable,
		Phase:             that.phase,
	}
}

// offer applies the reconciliation rule: accept a candidate iff no state is
// held yet or its updated_at is strictly newer than the held one. Equal or
// older timestamps are discarded silently, which is what makes the
// dual-channel design safe against races and replays.
func (that *Coordinator) offer(candidate *entity.GameState, source string) bool {
	log := that.logger.With("method", "offer", "source", source)

	that.mu.Lock()

	if that.phase == PhaseTerminated {
		that.mu.Unlock()
		return false
	}

	if that.state != nil && candidate.UpdatedAt <= that.state.UpdatedAt {
		held := that.state.UpdatedAt
		that.mu.Unlock()
		log.Debug("discarding stale candidate", "candidate", candidate.UpdatedAt, "held", held)
		return false
	}

	that.state = candidate
	that.lastSeen = candidate.UpdatedAt

	if candidate.IsFinished() {
		that.phase = PhaseTerminated
	} else {
		that.phase = PhaseSynced
	}

	snapshot := that.snapshotLocked()
	terminal := candidate.IsFinished()
	that.mu.Unlock()

	log.Debug("accepted candidate", "updated_at", candidate.UpdatedAt, "turn", candidate.TurnNumber)

	that.notify(snapshot)

	if !terminal {
		go that.refreshPlayable()
	}

	return true
}

func (that *Coordinator) notify(snapshot Snapshot) {
	if that.onChange != nil {
		that.onChange(snapshot)
	}
}
