package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/strataseven/sevens-client/internal/entity"
)

// RedisChannel fans room updates out over Redis Pub/Sub.
type RedisChannel struct {
	logger *slog.Logger
	client *redis.Client
}

func NewRedisChannel(ctx context.Context, logger *slog.Logger, addr string) (*RedisChannel, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisChannel{
		logger: logger.With("component", "realtime", "driver", "redis"),
		client: client,
	}, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	done   chan struct{}
}

func (that *redisSubscription) Unsubscribe() error {
	if err := that.pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}

	<-that.done

	return nil
}

func (that *RedisChannel) Subscribe(ctx context.Context, roomCode string, onUpdate func(*entity.GameState)) (Subscription, error) {
	log := that.logger.With("method", "Subscribe", "room", roomCode)

	pubsub := that.client.Subscribe(ctx, RoomTopic(roomCode))

	// Force the SUBSCRIBE round-trip so a dead broker fails here, not later.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", RoomTopic(roomCode), err)
	}

	subscription := &redisSubscription{
		pubsub: pubsub,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(subscription.done)

		for message := range pubsub.Channel() {
			state, err := decodeEvent([]byte(message.Payload))
			if err != nil {
				log.Error("dropping malformed event", "error", err)
				continue
			}

			if state == nil {
				continue
			}

			onUpdate(state)
		}
	}()

	return subscription, nil
}

func (that *RedisChannel) Publish(ctx context.Context, roomCode string, state *entity.GameState) error {
	payload, err := marshalEvent(state)
	if err != nil {
		return err
	}

	if err = that.client.Publish(ctx, RoomTopic(roomCode), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", RoomTopic(roomCode), err)
	}

	return nil
}

func (that *RedisChannel) Close() error {
	if err := that.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
