package entity

import (
	"fmt"
	"sort"
)

type Rank string

type Suit string

const (
	RankAce   Rank = "A"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
)

// PivotRank is the rank from which a suit's sequence grows in both directions.
// A suit has no visible sequence until it is played.
const PivotRank = RankSeven

const (
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
)

// PivotValue is Value() of PivotRank.
const PivotValue = 7

var rankValues = map[Rank]int{
	RankAce:   1,
	RankTwo:   2,
	RankThree: 3,
	RankFour:  4,
	RankFive:  5,
	RankSix:   6,
	RankSeven: 7,
	RankEight: 8,
	RankNine:  9,
	RankTen:   10,
	RankJack:  11,
	RankQueen: 12,
	RankKing:  13,
}

var suitSymbols = map[Suit]string{
	SuitHearts:   "♥",
	SuitSpades:   "♠",
	SuitDiamonds: "♦",
	SuitClubs:    "♣",
}

// Suits returns the four suits in their fixed display order.
func Suits() []Suit {
	return []Suit{SuitHearts, SuitSpades, SuitDiamonds, SuitClubs}
}

// Value maps a rank onto [1,13] with A=1 and K=13. The rank alphabet is a
// closed enumeration shared with the server, so an unknown symbol is a
// contract violation, not a recoverable error.
func (that Rank) Value() int {
	value, ok := rankValues[that]
	if !ok {
		panic(fmt.Sprintf("unknown rank %q", string(that)))
	}

	return value
}

func (that Suit) Symbol() string {
	symbol, ok := suitSymbols[that]
	if !ok {
		panic(fmt.Sprintf("unknown suit %q", string(that)))
	}

	return symbol
}

// CompareRanks is a total, transitive order over the 13 ranks.
func CompareRanks(a, b Rank) int {
	return a.Value() - b.Value()
}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (that Card) String() string {
	return string(that.Rank) + that.Suit.Symbol()
}

// SortCards orders cards by rank, low to high. Used for hands and suit stacks.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return CompareRanks(cards[i].Rank, cards[j].Rank) < 0
	})
}

// ContainsCard reports whether cards holds an equal (rank, suit) value.
func ContainsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}

	return false
}
