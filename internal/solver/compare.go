package solver

import (
	"fmt"

	"github.com/detrilemma/pokle-solver/internal/deck"
)

// Color is the per-position feedback value
type Color int

const (
	Grey Color = iota
	Yellow
	Green
)

// String returns the single-letter form used at the boundary: g/y/e
func (c Color) String() string {
	switch c {
	case Green:
		return "g"
	case Yellow:
		return "y"
	default:
		return "e"
	}
}

// Feedback is the five per-position colors of one guess against an answer
type Feedback [5]Color

// AllGreen reports whether every position is green
func (f Feedback) AllGreen() bool {
	return f == Feedback{Green, Green, Green, Green, Green}
}

// String returns the compact form, e.g. "gyeeg"
func (f Feedback) String() string {
	var s string
	for _, c := range f {
		s += c.String()
	}
	return s
}

// ParseFeedback parses a compact five-letter feedback string such as "gyeeg"
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	runes := []rune(s)
	if len(runes) != 5 {
		return f, fmt.Errorf("feedback must be exactly 5 colors, got %d", len(runes))
	}
	for i, r := range runes {
		switch r {
		case 'g', 'G':
			f[i] = Green
		case 'y', 'Y':
			f[i] = Yellow
		case 'e', 'E':
			f[i] = Grey
		default:
			return f, fmt.Errorf("invalid color %q: use g, y or e", string(r))
		}
	}
	return f, nil
}

// Code is a feedback vector packed as a five-digit base-10 integer in
// [0, 22222]: digit i is the color of board position i. An exact match is
// 22222.
type Code int

// AllGreenCode is the code of a perfect match
const AllGreenCode Code = 22222

// Encode packs feedback into its integer code
func (f Feedback) Encode() Code {
	return Code(10000*int(f[0]) + 1000*int(f[1]) + 100*int(f[2]) + 10*int(f[3]) + int(f[4]))
}

// ternary packs feedback into a base-3 index in [0, 242], used to bucket
// color distributions into a fixed-size histogram.
func (f Feedback) ternary() int {
	return 81*int(f[0]) + 27*int(f[1]) + 9*int(f[2]) + 3*int(f[3]) + int(f[4])
}

// Compare scores guess against answer.
//
// The flop block is order-independent: greens are claimed first so an exact
// hit cannot be stolen by an earlier partial match, then the remaining
// answer cards contribute their ranks and suits to a non-consuming yellow
// check. Turn and river are purely positional.
func Compare(guess, answer Board) Feedback {
	var f Feedback

	answerFlop := answer.Flop()
	var claimed [3]bool

	// Green pass over the flop
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !claimed[j] && guess[i] == answerFlop[j] {
				f[i] = Green
				claimed[j] = true
				break
			}
		}
	}

	// Yellow pass: a rank or suit among the unclaimed answer cards is enough,
	// and a single source can satisfy several guess cards
	var rankLeft [15]bool
	var suitLeft [4]bool
	for j := 0; j < 3; j++ {
		if !claimed[j] {
			rankLeft[answerFlop[j].Rank] = true
			suitLeft[answerFlop[j].Suit] = true
		}
	}
	for i := 0; i < 3; i++ {
		if f[i] == Green {
			continue
		}
		if rankLeft[guess[i].Rank] || suitLeft[guess[i].Suit] {
			f[i] = Yellow
		}
	}

	f[3] = compareSingle(guess.Turn(), answer.Turn())
	f[4] = compareSingle(guess.River(), answer.River())
	return f
}

func compareSingle(guess, answer deck.Card) Color {
	switch {
	case guess == answer:
		return Green
	case guess.SameRank(answer) || guess.SameSuit(answer):
		return Yellow
	default:
		return Grey
	}
}
