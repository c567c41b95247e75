package action

import (
	"github.com/strataseven/sevens-client/internal/entity"
)

// Advisory checks: they give the player fast local rejection but are never
// the final authority - the server re-validates every submission.

// IsPlayersTurn reports whether the held state says it is playerID's turn.
func IsPlayersTurn(state *entity.GameState, playerID string) bool {
	if state == nil {
		return false
	}

	return state.IsPlayersTurn(playerID)
}

// IsPlayable reports whether card is in the locally cached playable set. A
// stale cache can produce a false positive or negative; the server's
// response resolves either.
func IsPlayable(playable []entity.Card, card entity.Card) bool {
	return entity.ContainsCard(playable, card)
}
