// Package render draws the reconciled board state in the terminal. It only
// consumes snapshots; it never feeds anything back into synchronization.
package render

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/strataseven/sevens-client/internal/entity"
	"github.com/strataseven/sevens-client/internal/gamesync"
	"github.com/strataseven/sevens-client/internal/layout"
)

// Card geometry used for the stack layout, in pixels; offsets are scaled down
// to text columns before printing.
const (
	cardWidth = 49
	tightStep = 18
	cellWidth = 4
)

var suitColors = map[entity.Suit]pterm.Color{
	entity.SuitHearts:   pterm.FgRed,
	entity.SuitSpades:   pterm.FgCyan,
	entity.SuitDiamonds: pterm.FgYellow,
	entity.SuitClubs:    pterm.FgGreen,
}

// BoardLines renders one row per suit, each card placed at its layout offset
// scaled to text columns. A suit without its pivot shows an empty slot.
func BoardLines(state *entity.GameState) []string {
	lines := make([]string, 0, len(entity.Suits()))

	for _, suit := range entity.Suits() {
		stack := state.Board[suit]
		color := suitColors[suit]

		row := layout.Compute(stack.Cards, cardWidth, tightStep)
		if len(row.Positions) == 0 {
			lines = append(lines, fmt.Sprintf("%s  %s", color.Sprint(suit.Symbol()), pterm.Gray("(no 7 yet)")))
			continue
		}

		step := float64(cardWidth - tightStep)

		// Scale pixel offsets down to text columns and place each card label.
		buffer := make([]rune, 0)
		for card, offset := range row.Positions {
			column := int(offset/step+0.5) * cellWidth
			label := []rune(string(card.Rank))

			for len(buffer) < column+len(label) {
				buffer = append(buffer, ' ')
			}
			copy(buffer[column:], label)
		}

		lines = append(lines, fmt.Sprintf("%s %s", color.Sprint(suit.Symbol()), color.Sprint(string(buffer))))
	}

	return lines
}

// HandLine renders the local player's hand sorted by rank, highlighting the
// advisory playable set.
func HandLine(hand, playable []entity.Card) string {
	sorted := make([]entity.Card, len(hand))
	copy(sorted, hand)
	entity.SortCards(sorted)

	parts := make([]string, 0, len(sorted))
	for _, card := range sorted {
		if entity.ContainsCard(playable, card) {
			parts = append(parts, pterm.Green(card.String()))
		} else {
			parts = append(parts, pterm.Gray(card.String()))
		}
	}

	return strings.Join(parts, " ")
}

// Snapshot prints the whole game view for the local player.
func Snapshot(snapshot gamesync.Snapshot, playerID string) {
	state := snapshot.State
	if state == nil {
		pterm.Info.Println("waiting for game state...")
		return
	}

	pterm.DefaultSection.Printf("Turn %d", state.TurnNumber)

	for _, line := range BoardLines(state) {
		pterm.Println(line)
	}

	if state.LastAction != "" {
		pterm.Info.Println(state.LastAction)
	}

	if state.IsFinished() {
		winner := state.PlayerByID(state.Winner)
		name := state.Winner
		if winner != nil {
			name = winner.Name
		}
		pterm.Success.Printf("%s wins!\n", name)
		return
	}

	local := state.PlayerByID(playerID)
	if local != nil {
		pterm.Println(pterm.Bold.Sprint("Your hand: ") + HandLine(local.Hand, snapshot.PlayableCards))
	}

	current := state.CurrentPlayer()
	if current.ID == playerID {
		pterm.Success.Println("It's your turn")
	} else {
		pterm.Info.Printf("Waiting for %s\n", current.Name)
	}

	if snapshot.IsSyncing {
		pterm.Debug.Println("syncing...")
	}
}
