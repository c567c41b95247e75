package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataseven/sevens-client/internal/entity"
)

const (
	cardWidth = 49.0
	tightStep = 18.0
)

func hearts(ranks ...entity.Rank) []entity.Card {
	cards := make([]entity.Card, 0, len(ranks))
	for _, rank := range ranks {
		cards = append(cards, entity.Card{Rank: rank, Suit: entity.SuitHearts})
	}

	return cards
}

func TestCompute_PivotAnchoring(t *testing.T) {
	// Given: only the pivot has been played
	cards := hearts(entity.RankSeven)

	// When: laid out
	result := Compute(cards, cardWidth, tightStep)

	// Then: the pivot sits at offset 0 and the row is one card wide
	require.Len(t, result.Positions, 1)
	assert.InDelta(t, 0, result.Positions[cards[0]], 1e-9)
	assert.InDelta(t, cardWidth, result.TotalWidth, 1e-9)
}

func TestCompute_UpwardRun(t *testing.T) {
	// Given: hearts 7,8,9 with cardWidth=49 and tightStep=18
	cards := hearts(entity.RankSeven, entity.RankEight, entity.RankNine)

	// When: laid out
	result := Compute(cards, cardWidth, tightStep)

	// Then: each step advances cardWidth-tightStep=31 and the total spans the
	// row plus one card width
	assert.InDelta(t, 0, result.Positions[hearts(entity.RankSeven)[0]], 1e-9)
	assert.InDelta(t, 31, result.Positions[hearts(entity.RankEight)[0]], 1e-9)
	assert.InDelta(t, 62, result.Positions[hearts(entity.RankNine)[0]], 1e-9)
	assert.InDelta(t, 111, result.TotalWidth, 1e-9)
}

func TestCompute_DownwardRunIsLeftNormalized(t *testing.T) {
	// Given: a run growing below the pivot
	cards := hearts(entity.RankFive, entity.RankSix, entity.RankSeven)

	// When: laid out
	result := Compute(cards, cardWidth, tightStep)

	// Then: offsets are shifted so the leftmost card is at 0 and the pivot
	// keeps its relative place at the right edge of the run
	assert.InDelta(t, 0, result.Positions[hearts(entity.RankFive)[0]], 1e-9)
	assert.InDelta(t, 31, result.Positions[hearts(entity.RankSix)[0]], 1e-9)
	assert.InDelta(t, 62, result.Positions[hearts(entity.RankSeven)[0]], 1e-9)
	assert.InDelta(t, 111, result.TotalWidth, 1e-9)
}

func TestCompute_FullRunBothDirections(t *testing.T) {
	cards := hearts(entity.RankFive, entity.RankSix, entity.RankSeven, entity.RankEight)

	result := Compute(cards, cardWidth, tightStep)

	// Monotonic spacing: every neighbour pair is exactly one step apart.
	assert.InDelta(t, 0, result.Positions[hearts(entity.RankFive)[0]], 1e-9)
	assert.InDelta(t, 31, result.Positions[hearts(entity.RankSix)[0]], 1e-9)
	assert.InDelta(t, 62, result.Positions[hearts(entity.RankSeven)[0]], 1e-9)
	assert.InDelta(t, 93, result.Positions[hearts(entity.RankEight)[0]], 1e-9)
	assert.InDelta(t, 142, result.TotalWidth, 1e-9)
}

func TestCompute_NoPivotYieldsPlaceholder(t *testing.T) {
	// Given: no pivot in the set (input order is irrelevant)
	cards := hearts(entity.RankEight, entity.RankNine)

	// When: laid out
	result := Compute(cards, cardWidth, tightStep)

	// Then: an empty placeholder layout, rendered by the caller as an empty slot
	assert.Empty(t, result.Positions)
	assert.Zero(t, result.TotalWidth)
}

func TestCompute_EmptySet(t *testing.T) {
	result := Compute(nil, cardWidth, tightStep)

	assert.Empty(t, result.Positions)
	assert.Zero(t, result.TotalWidth)
}

func TestCompute_Idempotent(t *testing.T) {
	// Given: the same set of played cards
	cards := hearts(entity.RankSix, entity.RankSeven, entity.RankEight, entity.RankNine)

	// When: laid out twice
	first := Compute(cards, cardWidth, tightStep)
	second := Compute(cards, cardWidth, tightStep)

	// Then: the results are identical - a pure function of the input
	assert.Equal(t, first, second)
}

func TestCompute_InputOrderIrrelevant(t *testing.T) {
	ordered := hearts(entity.RankSix, entity.RankSeven, entity.RankEight)
	shuffled := hearts(entity.RankEight, entity.RankSix, entity.RankSeven)

	assert.Equal(t, Compute(ordered, cardWidth, tightStep), Compute(shuffled, cardWidth, tightStep))
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	cards := hearts(entity.RankNine, entity.RankSeven, entity.RankEight)

	Compute(cards, cardWidth, tightStep)

	assert.Equal(t, hearts(entity.RankNine, entity.RankSeven, entity.RankEight), cards)
}
