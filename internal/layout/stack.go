// Package layout positions a suit's played cards as a single overlapping row
// anchored on the pivot rank. It is a pure function of its input: no state, no
// dependency on prior calls.
package layout

import (
	"sort"

	"github.com/strataseven/sevens-client/internal/entity"
)

type Layout struct {
	Positions  map[entity.Card]float64
	TotalWidth float64
}

// Compute assigns each played card a horizontal offset. The pivot card sits at
// offset 0 and every other card is walked outward from it, advancing
// cardWidth-tightStep per step so that neighbours overlap and only a tightStep
// strip of each non-edge card stays visible. Offsets are then normalized so
// the leftmost card is at 0.
//
// With no pivot in cards there is no anchor yet; the caller gets an empty
// placeholder layout and renders an empty slot.
func Compute(cards []entity.Card, cardWidth, tightStep float64) Layout {
	sorted := make([]entity.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return entity.CompareRanks(sorted[i].Rank, sorted[j].Rank) < 0
	})

	pivotIndex := -1
	for i, card := range sorted {
		if card.Rank == entity.PivotRank {
			pivotIndex = i
			break
		}
	}

	if pivotIndex < 0 {
		return Layout{Positions: map[entity.Card]float64{}}
	}

	step := cardWidth - tightStep

	positions := make(map[entity.Card]float64, len(sorted))
	minOffset := 0.0
	maxOffset := 0.0

	for i, card := range sorted {
		offset := float64(i-pivotIndex) * step

		positions[card] = offset

		if offset < minOffset {
			minOffset = offset
		}
		if offset > maxOffset {
			maxOffset = offset
		}
	}

	// Left-align: shift so the minimum offset becomes 0.
	for card, offset := range positions {
		positions[card] = offset - minOffset
	}

	return Layout{
		Positions:  positions,
		TotalWidth: maxOffset - minOffset + cardWidth,
	}
}
