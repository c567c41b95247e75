package realtime_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataseven/sevens-client/internal/entity"
	"github.com/strataseven/sevens-client/internal/realtime"
	"github.com/strataseven/sevens-client/testing/suite"
)

func brokerState(updatedAt int64) *entity.GameState {
	board := entity.Board{}
	for _, suit := range entity.Suits() {
		board[suit] = &entity.SuitStack{}
	}

	return &entity.GameState{
		Board:              board,
		CurrentPlayerIndex: 0,
		Players: []*entity.Player{
			{ID: "p1", Name: "Alice"},
			{ID: "p2", Name: "Bob"},
		},
		TurnNumber: 1,
		UpdatedAt:  updatedAt,
	}
}

type stateCollector struct {
	mu     sync.Mutex
	states []*entity.GameState
}

func (that *stateCollector) collect(state *entity.GameState) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.states = append(that.states, state)
}

func (that *stateCollector) collected() []*entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]*entity.GameState(nil), that.states...)
}

func TestRedisChannel_PublishReachesSubscriber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx, s := suite.New(t)

	channel, err := realtime.NewRedisChannel(ctx, s.Logger, s.Addr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = channel.Close()
	})

	// Given: a subscriber on the room topic
	collector := &stateCollector{}
	subscription, err := channel.Subscribe(ctx, "ABCD", collector.collect)
	require.NoError(t, err)

	// When: a state is published to that room
	require.NoError(t, channel.Publish(ctx, "ABCD", brokerState(100)))

	// Then: the subscriber receives it
	require.Eventually(t, func() bool {
		return len(collector.collected()) == 1
	}, 10*time.Second, 50*time.Millisecond)
	assert.Equal(t, int64(100), collector.collected()[0].UpdatedAt)

	// And: unsubscribing stops delivery
	require.NoError(t, subscription.Unsubscribe())
	require.NoError(t, channel.Publish(ctx, "ABCD", brokerState(200)))

	time.Sleep(250 * time.Millisecond)
	assert.Len(t, collector.collected(), 1)
}

func TestRedisChannel_RoomsAreIsolated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx, s := suite.New(t)

	channel, err := realtime.NewRedisChannel(ctx, s.Logger, s.Addr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = channel.Close()
	})

	collector := &stateCollector{}
	subscription, err := channel.Subscribe(ctx, "ABCD", collector.collect)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = subscription.Unsubscribe()
	})

	// When: a state is published to a different room
	require.NoError(t, channel.Publish(ctx, "WXYZ", brokerState(100)))
	require.NoError(t, channel.Publish(ctx, "ABCD", brokerState(200)))

	// Then: only the subscribed room's state arrives
	require.Eventually(t, func() bool {
		return len(collector.collected()) == 1
	}, 10*time.Second, 50*time.Millisecond)
	assert.Equal(t, int64(200), collector.collected()[0].UpdatedAt)
}

func TestRedisChannel_MalformedPayloadsAreDropped(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx, s := suite.New(t)

	channel, err := realtime.NewRedisChannel(ctx, s.Logger, s.Addr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = channel.Close()
	})

	collector := &stateCollector{}
	subscription, err := channel.Subscribe(ctx, "ABCD", collector.collect)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = subscription.Unsubscribe()
	})

	// Given: junk on the wire ahead of a real event
	require.NoError(t, s.Redis.Publish(ctx, realtime.RoomTopic("ABCD"), `{not json`).Err())
	require.NoError(t, s.Redis.Publish(ctx, realtime.RoomTopic("ABCD"), `{"event": "chat"}`).Err())
	require.NoError(t, channel.Publish(ctx, "ABCD", brokerState(300)))

	// Then: the junk is swallowed and only the valid state is delivered
	require.Eventually(t, func() bool {
		return len(collector.collected()) == 1
	}, 10*time.Second, 50*time.Millisecond)
	assert.Equal(t, int64(300), collector.collected()[0].UpdatedAt)
}
