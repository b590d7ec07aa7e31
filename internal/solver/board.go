package solver

import (
	"strings"

	"github.com/detrilemma/pokle-solver/internal/deck"
)

// Board is a complete five-card community board: three flop cards, the turn
// and the river. The flop triple is unordered for identity purposes, but the
// enumerator always produces it in canonical deck order so boards compare
// and print stably.
type Board [5]deck.Card

// Flop returns the three flop cards
func (b Board) Flop() [3]deck.Card {
	return [3]deck.Card{b[0], b[1], b[2]}
}

// Turn returns the fourth card
func (b Board) Turn() deck.Card {
	return b[3]
}

// River returns the fifth card
func (b Board) River() deck.Card {
	return b[4]
}

// Cards returns all five cards in board order
func (b Board) Cards() []deck.Card {
	return b[:]
}

// Set returns the board as a card bitmask
func (b Board) Set() deck.CardSet {
	return deck.NewCardSet(b[:])
}

// String returns the board as "4H 5H 6H | 4S | 7D"
func (b Board) String() string {
	flop := make([]string, 3)
	for i := 0; i < 3; i++ {
		flop[i] = b[i].String()
	}
	return strings.Join(flop, " ") + " | " + b[3].String() + " | " + b[4].String()
}
