package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/strataseven/sevens-client/internal/entity"
)

// NATSChannel fans room updates out over a NATS subject.
type NATSChannel struct {
	logger *slog.Logger
	conn   *nats.Conn
}

func NewNATSChannel(logger *slog.Logger, url string) (*NATSChannel, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSChannel{
		logger: logger.With("component", "realtime", "driver", "nats"),
		conn:   conn,
	}, nil
}

type natsSubscription struct {
	subscription *nats.Subscription
}

func (that *natsSubscription) Unsubscribe() error {
	if err := that.subscription.Unsubscribe(); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

func (that *NATSChannel) Subscribe(_ context.Context, roomCode string, onUpdate func(*entity.GameState)) (Subscription, error) {
	log := that.logger.With("method", "Subscribe", "room", roomCode)

	subscription, err := that.conn.Subscribe(RoomTopic(roomCode), func(message *nats.Msg) {
		state, err := decodeEvent(message.Data)
		if err != nil {
			log.Error("dropping malformed event", "error", err)
			return
		}

		if state == nil {
			return
		}

		onUpdate(state)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", RoomTopic(roomCode), err)
	}

	return &natsSubscription{subscription: subscription}, nil
}

func (that *NATSChannel) Publish(_ context.Context, roomCode string, state *entity.GameState) error {
	payload, err := marshalEvent(state)
	if err != nil {
		return err
	}

	if err = that.conn.Publish(RoomTopic(roomCode), payload); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", RoomTopic(roomCode), err)
	}

	return nil
}

func (that *NATSChannel) Close() error {
	that.conn.Close()
	return nil
}
