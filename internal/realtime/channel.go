// Package realtime delivers out-of-band push notifications of a room's state
// changes. Delivery is best-effort and at-most-once per publish: messages may
// be dropped, duplicated, or delayed arbitrarily, so receivers must treat
// every inbound state as a candidate, never as ground truth.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strataseven/sevens-client/internal/entity"
)

const eventGameState = "game_state"

type Channel interface {
	Subscribe(ctx context.Context, roomCode string, onUpdate func(*entity.GameState)) (Subscription, error)
	Publish(ctx context.Context, roomCode string, state *entity.GameState) error
	Close() error
}

type Subscription interface {
	Unsubscribe() error
}

// event is the broadcast envelope shared by all drivers.
type event struct {
	Event     string            `json:"event"`
	GameState *entity.GameState `json:"game_state"`
}

// RoomTopic derives the topic name for a room code.
func RoomTopic(roomCode string) string {
	return "room:" + roomCode
}

func marshalEvent(state *entity.GameState) ([]byte, error) {
	payload, err := json.Marshal(event{Event: eventGameState, GameState: state})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game state event: %w", err)
	}

	return payload, nil
}

// decodeEvent parses and validates a broadcast payload. A nil state with a nil
// error means the payload was not a usable game-state event and must be
// dropped without delivery.
func decodeEvent(raw []byte) (*entity.GameState, error) {
	var message event
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if message.Event != eventGameState || message.GameState == nil {
		return nil, nil
	}

	if err := message.GameState.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game state in event: %w", err)
	}

	return message.GameState, nil
}
