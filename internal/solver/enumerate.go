package solver

import (
	"github.com/detrilemma/pokle-solver/internal/deck"
)

// partial is a board prefix flowing through the pipeline with the cards-used
// set accumulated so far.
type partial struct {
	cards []deck.Card
	used  deck.CardSet
}

// enumerate runs the three-stage pipeline: every C(46,3) flop triple, then
// each remaining turn card, then each remaining river card, validating the
// expected ordering at every stage and the all-cards-used constraint at the
// river. The result order follows canonical deck order and is stable across
// runs.
func (s *Solver) enumerate() []Board {
	available := deck.Remaining(s.holeSet)

	flops := s.enumerateFlops(available)
	s.logger.Debug("flop stage complete", "accepted", len(flops))

	turns := s.extend(flops, available, s.orderings[PhaseTurn], false)
	s.logger.Debug("turn stage complete", "accepted", len(turns))

	rivers := s.extend(turns, available, s.orderings[PhaseRiver], true)
	s.logger.Debug("river stage complete", "accepted", len(rivers))

	boards := make([]Board, len(rivers))
	for i, p := range rivers {
		copy(boards[i][:], p.cards)
	}
	return boards
}

func (s *Solver) enumerateFlops(available []deck.Card) []partial {
	var accepted []partial
	n := len(available)
	board := make([]deck.Card, 3)
	for i := 0; i < n-2; i++ {
		board[0] = available[i]
		for j := i + 1; j < n-1; j++ {
			board[1] = available[j]
			for k := j + 1; k < n; k++ {
				board[2] = available[k]
				if ok, used := s.validatePhase(board, s.orderings[PhaseFlop], 0, false); ok {
					accepted = append(accepted, partial{
						cards: []deck.Card{board[0], board[1], board[2]},
						used:  used,
					})
				}
			}
		}
	}
	return accepted
}

func (s *Solver) extend(prefixes []partial, available []deck.Card, expected Ordering, isRiver bool) []partial {
	var accepted []partial
	for _, prefix := range prefixes {
		onBoard := deck.NewCardSet(prefix.cards)
		board := make([]deck.Card, len(prefix.cards)+1)
		copy(board, prefix.cards)
		for _, card := range available {
			if onBoard.Contains(card) {
				continue
			}
			board[len(board)-1] = card
			if ok, used := s.validatePhase(board, expected, prefix.used, isRiver); ok {
				cards := make([]deck.Card, len(board))
				copy(cards, board)
				accepted = append(accepted, partial{cards: cards, used: used})
			}
		}
	}
	return accepted
}
