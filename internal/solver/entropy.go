package solver

import (
	"math"
	"runtime"

	"github.com/detrilemma/pokle-solver/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// selectGuess returns the index of the candidate whose color-code
// distribution over the answer set has maximum Shannon entropy. Ties break
// to the lowest enumeration index.
//
// When the candidate set is larger than the sampling threshold, the answers
// are a seeded uniform sample without replacement, drawn once per call so
// every candidate guess is scored against the identical sample. Entropy
// computation fans out across guesses; the argmax scan stays sequential so
// the result is deterministic.
func (s *Solver) selectGuess() int {
	answers := s.candidates
	if s.sampling && len(s.candidates) > s.samplingThreshold {
		idxs := randutil.SampleIndexes(s.rng, len(s.candidates), s.sampleSize)
		answers = make([]Board, len(idxs))
		for i, idx := range idxs {
			answers[i] = s.candidates[idx]
		}
		s.logger.Debug("sampling answers for entropy", "candidates", len(s.candidates), "sample", len(answers))
	}

	entropies := make([]float64, len(s.candidates))

	g := new(errgroup.Group)
	workers := runtime.NumCPU()
	chunk := (len(s.candidates) + workers - 1) / workers
	for start := 0; start < len(s.candidates); start += chunk {
		end := min(start+chunk, len(s.candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				entropies[i] = entropy(s.candidates[i], answers)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never error

	best := 0
	for i, h := range entropies {
		if h > entropies[best] {
			best = i
		}
	}
	return best
}

// entropy is the base-2 Shannon entropy of the color-code histogram of guess
// against the answers. Codes bucket into the 3^5 ternary bins.
func entropy(guess Board, answers []Board) float64 {
	var counts [243]int
	for _, answer := range answers {
		counts[Compare(guess, answer).ternary()]++
	}

	n := float64(len(answers))
	var sum float64
	for _, c := range counts {
		if c > 0 {
			sum += float64(c) * math.Log2(float64(c))
		}
	}
	return math.Log2(n) - sum/n
}
