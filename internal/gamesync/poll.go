package gamesync

import (
	"time"

	"github.com/strataseven/sevens-client/internal/entity"
)

// pollLoop re-pulls on a timer until the session terminates. The cadence is
// re-evaluated every tick: single-human games against automated opponents
// poll faster, everything else polls at the slow cadence.
func (that *Coordinator) pollLoop() {
	defer close(that.done)

	timer := time.NewTimer(that.interval())
	defer timer.Stop()

	for {
		select {
		case <-that.ctx.Done():
			return
		case <-timer.C:
		}

		that.mu.Lock()
		terminated := that.phase == PhaseTerminated
		subscribed := that.subscription != nil
		that.mu.Unlock()

		if terminated {
			return
		}

		if !subscribed {
			that.subscribe()
		}

		that.pullOnce()

		timer.Reset(that.interval())
	}
}

func (that *Coordinator) interval() time.Duration {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state != nil && that.state.AllOpponentsAI(that.playerID) {
		return that.fastInterval
	}

	return that.slowInterval
}

// pullOnce fetches the room snapshot and offers its game state as a
// candidate. Pull failures are logged and retried on the next tick, never
// surfaced: the push channel or a later poll recovers freshness.
func (that *Coordinator) pullOnce() {
	log := that.logger.With("method", "pullOnce")

	that.setSyncing(true)
	defer that.setSyncing(false)

	room, err := that.client.GetRoom(that.ctx, that.roomCode)
	if err != nil {
		log.Error("pull failed, will retry on next tick", "error", err)
		return
	}

	if room.GameState == nil {
		log.Debug("room has no game state yet", "status", room.Status)
		return
	}

	that.offer(room.GameState, "pull")
}

// subscribe opens the push channel. A failure does not block polling; the
// next tick retries the subscription.
func (that *Coordinator) subscribe() {
	log := that.logger.With("method", "subscribe")

	subscription, err := that.channel.Subscribe(that.ctx, that.roomCode, func(state *entity.GameState) {
		that.offer(state, "push")
	})
	if err != nil {
		log.Error("subscribe failed, polling remains the fallback", "error", err)
		return
	}

	that.mu.Lock()
	if that.phase == PhaseTerminated {
		that.mu.Unlock()
		_ = subscription.Unsubscribe()
		return
	}
	that.subscription = subscription
	that.mu.Unlock()
}

// refreshPlayable re-fetches the local player's legal moves after an accepted
// update. On failure the previous, possibly stale set is kept so the UI does
// not flicker playable highlighting off during a transient blip.
func (that *Coordinator) refreshPlayable() {
	log := that.logger.With("method", "refreshPlayable")

	if that.ctx == nil {
		return
	}

	cards, err := that.client.PlayableCards(that.ctx, that.roomCode, that.playerID)
	if err != nil {
		log.Error("keeping previous playable set", "error", err)
		return
	}

	that.mu.Lock()
	if that.phase == PhaseTerminated {
		that.mu.Unlock()
		return
	}
	that.playable = cards
	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.notify(snapshot)
}

func (that *Coordinator) setSyncing(value bool) {
	that.mu.Lock()
	that.syncing = value
	that.mu.Unlock()
}
