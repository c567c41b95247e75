package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strataseven/sevens-client/internal/entity"
)

func TestIsPlayersTurn(t *testing.T) {
	state := testState(100)

	assert.True(t, IsPlayersTurn(state, "p1"))
	assert.False(t, IsPlayersTurn(state, "p2"))
	assert.False(t, IsPlayersTurn(nil, "p1"))
}

func TestIsPlayable(t *testing.T) {
	playable := []entity.Card{
		{Rank: entity.RankSeven, Suit: entity.SuitHearts},
		{Rank: entity.RankEight, Suit: entity.SuitHearts},
	}

	assert.True(t, IsPlayable(playable, entity.Card{Rank: entity.RankSeven, Suit: entity.SuitHearts}))
	assert.False(t, IsPlayable(playable, entity.Card{Rank: entity.RankSeven, Suit: entity.SuitSpades}))
	assert.False(t, IsPlayable(nil, entity.Card{Rank: entity.RankSeven, Suit: entity.SuitHearts}))
}
