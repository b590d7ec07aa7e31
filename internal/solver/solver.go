// Package solver finds every five-card community board consistent with the
// hand-strength orderings of a three-player Pokle puzzle, and drives the
// guess/feedback loop that narrows them to the answer.
package solver

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/detrilemma/pokle-solver/internal/deck"
	"github.com/detrilemma/pokle-solver/internal/randutil"
)

const (
	// DefaultSamplingThreshold is the candidate count above which the guess
	// selector switches from the exact color distribution to a sample.
	DefaultSamplingThreshold = 50

	// DefaultSampleSize is how many answers the selector samples.
	DefaultSampleSize = 50

	// DefaultSeed seeds the sampling RNG when the caller does not.
	DefaultSeed int64 = 1
)

// HolePair is one player's two private cards
type HolePair [2]deck.Card

// Solver holds one puzzle: three hole pairs, the three phase orderings, and
// the candidate set once Solve has run. Instances are not safe for
// concurrent use and share nothing but the master deck.
type Solver struct {
	holes     [3]HolePair
	orderings [3]Ordering
	holeSet   deck.CardSet

	samplingThreshold int
	sampleSize        int
	sampling          bool
	seed              int64
	rng               *rand.Rand
	logger            *log.Logger

	solved     bool
	candidates []Board
	lastGuess  *Board
	lastCodes  []Code
}

// Option configures a Solver
type Option func(*Solver)

// WithSamplingThreshold sets the candidate count above which the guess
// selector samples answers instead of scoring all of them.
func WithSamplingThreshold(n int) Option {
	return func(s *Solver) { s.samplingThreshold = n }
}

// WithSampleSize sets how many answers the selector samples
func WithSampleSize(n int) Option {
	return func(s *Solver) { s.sampleSize = n }
}

// WithSampling enables or disables answer sampling entirely
func WithSampling(enabled bool) Option {
	return func(s *Solver) { s.sampling = enabled }
}

// WithSeed seeds the sampling RNG for bit-exact replays
func WithSeed(seed int64) Option {
	return func(s *Solver) { s.seed = seed }
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Solver) { s.logger = logger }
}

// New validates the puzzle inputs and constructs a Solver.
//
// The three hole pairs must hold six distinct cards, and each ordering must
// be a permutation of the player indices 1-3.
func New(holes [3]HolePair, orderings [3]Ordering, opts ...Option) (*Solver, error) {
	var holeSet deck.CardSet
	for p, pair := range holes {
		for _, card := range pair {
			if holeSet.Contains(card) {
				return nil, fmt.Errorf("duplicate hole card %s in player %d's pair", card, p+1)
			}
			holeSet = holeSet.Add(card)
		}
	}

	for phase, ordering := range orderings {
		if !ordering.Valid() {
			return nil, fmt.Errorf("%s ordering %v is not a permutation of players 1-3", Phase(phase), ordering)
		}
	}

	s := &Solver{
		holes:             holes,
		orderings:         orderings,
		holeSet:           holeSet,
		samplingThreshold: DefaultSamplingThreshold,
		sampleSize:        DefaultSampleSize,
		sampling:          true,
		seed:              DefaultSeed,
		logger:            log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampleSize > s.samplingThreshold {
		s.sampleSize = s.samplingThreshold
	}
	s.rng = randutil.New(s.seed)
	return s, nil
}

// Holes returns the three hole pairs in player order
func (s *Solver) Holes() [3]HolePair {
	return s.holes
}

// Orderings returns the flop, turn and river orderings
func (s *Solver) Orderings() [3]Ordering {
	return s.orderings
}

// Solve enumerates the candidate boards. Zero candidates is a valid result,
// not an error. Calling Solve again rebuilds the full set and resets any
// guess state, returning an identically ordered list.
func (s *Solver) Solve() []Board {
	s.candidates = s.enumerate()
	s.solved = true
	s.lastGuess = nil
	s.lastCodes = nil
	s.logger.Info("solved", "candidates", len(s.candidates))
	return s.candidates
}

// Suggest returns the entropy-maximizing candidate board and records it as
// the reference for the next ApplyFeedback call.
func (s *Solver) Suggest() (Board, error) {
	if !s.solved {
		return Board{}, fmt.Errorf("%w: Suggest before Solve", ErrPreconditionUnmet)
	}
	if len(s.candidates) == 0 {
		return Board{}, ErrEmptyCandidates
	}

	idx := 0
	if len(s.candidates) > 1 {
		idx = s.selectGuess()
	}
	guess := s.candidates[idx]
	s.lastGuess = &guess

	// Cache the guess's code against every candidate so pruning is a single
	// pass over precomputed codes
	s.lastCodes = make([]Code, len(s.candidates))
	for i, answer := range s.candidates {
		s.lastCodes[i] = Compare(guess, answer).Encode()
	}

	return guess, nil
}

// ApplyFeedback prunes the candidate set to the boards that would have
// produced the observed colors against the last suggestion, and returns the
// surviving set. Inconsistent feedback leaves the set unchanged.
func (s *Solver) ApplyFeedback(feedback Feedback) ([]Board, error) {
	if s.lastGuess == nil {
		return nil, fmt.Errorf("%w: ApplyFeedback before Suggest", ErrPreconditionUnmet)
	}

	codes := s.lastCodes
	if codes == nil {
		codes = make([]Code, len(s.candidates))
		for i, answer := range s.candidates {
			codes[i] = Compare(*s.lastGuess, answer).Encode()
		}
	}

	want := feedback.Encode()
	survivors := make([]Board, 0, len(s.candidates))
	for i, board := range s.candidates {
		if codes[i] == want {
			survivors = append(survivors, board)
		}
	}

	if len(survivors) == 0 {
		return nil, fmt.Errorf("%w: code %05d", ErrInconsistentFeedback, want)
	}

	s.candidates = survivors
	s.lastCodes = nil
	s.logger.Info("pruned candidates", "feedback", feedback, "remaining", len(survivors))
	return s.candidates, nil
}

// Remaining returns the current candidate set
func (s *Solver) Remaining() []Board {
	return s.candidates
}
