package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detrilemma/pokle-solver/internal/deck"
)

func mustPair(t *testing.T, texts string) HolePair {
	t.Helper()
	cards := deck.MustParseCards(texts)
	require.Len(t, cards, 2)
	return HolePair{cards[0], cards[1]}
}

// The fast puzzle used by most loop tests: 32 candidate boards
func newSmallSolver(t *testing.T, opts ...Option) *Solver {
	t.Helper()
	sv, err := New(
		[3]HolePair{
			mustPair(t, "QD QC"),
			mustPair(t, "10H 2H"),
			mustPair(t, "9H KH"),
		},
		[3]Ordering{
			{2, 1, 3},
			{1, 3, 2},
			{2, 1, 3},
		},
		opts...,
	)
	require.NoError(t, err)
	return sv
}

func TestNewRejectsDuplicateHoleCards(t *testing.T) {
	_, err := New(
		[3]HolePair{
			mustPair(t, "QD QC"),
			mustPair(t, "QD 2H"),
			mustPair(t, "9H KH"),
		},
		[3]Ordering{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}},
	)
	assert.Error(t, err)

	_, err = New(
		[3]HolePair{
			mustPair(t, "QD QD"),
			mustPair(t, "10H 2H"),
			mustPair(t, "9H KH"),
		},
		[3]Ordering{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}},
	)
	assert.Error(t, err)
}

func TestNewRejectsInvalidOrdering(t *testing.T) {
	holes := [3]HolePair{
		mustPair(t, "QD QC"),
		mustPair(t, "10H 2H"),
		mustPair(t, "9H KH"),
	}

	for _, ordering := range []Ordering{{1, 2, 2}, {0, 1, 2}, {1, 2, 4}, {3, 3, 3}} {
		_, err := New(holes, [3]Ordering{ordering, {1, 2, 3}, {1, 2, 3}})
		assert.Error(t, err, "ordering %v should be rejected", ordering)
	}
}

func TestSolveExactCountSmall(t *testing.T) {
	sv := newSmallSolver(t)
	candidates := sv.Solve()
	assert.Len(t, candidates, 32)
}

func TestSolveCandidateInvariants(t *testing.T) {
	sv := newSmallSolver(t)
	candidates := sv.Solve()
	require.NotEmpty(t, candidates)

	holeSet := sv.holeSet
	for _, board := range candidates {
		set := board.Set()
		assert.Equal(t, 5, set.Count(), "board %v has duplicate cards", board)
		assert.False(t, set.Intersects(holeSet), "board %v uses a hole card", board)

		// Re-running the phase validator over the board reproduces the
		// orderings with the all-used constraint satisfied
		ok, used := sv.validatePhase(board[:3], sv.orderings[PhaseFlop], 0, false)
		require.True(t, ok, "flop rejected for %v", board)
		ok, used = sv.validatePhase(board[:4], sv.orderings[PhaseTurn], used, false)
		require.True(t, ok, "turn rejected for %v", board)
		ok, used = sv.validatePhase(board[:5], sv.orderings[PhaseRiver], used, true)
		require.True(t, ok, "river rejected for %v", board)
		assert.Equal(t, set, used, "used set mismatch for %v", board)
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	sv := newSmallSolver(t)
	first := sv.Solve()
	second := sv.Solve()
	assert.Equal(t, first, second)
}

func TestSolveExactCountMedium(t *testing.T) {
	if testing.Short() {
		t.Skip("full enumeration is slow")
	}
	sv, err := New(
		[3]HolePair{
			mustPair(t, "KH 6S"),
			mustPair(t, "8C 8H"),
			mustPair(t, "4H 9S"),
		},
		[3]Ordering{
			{2, 3, 1},
			{3, 2, 1},
			{3, 1, 2},
		},
	)
	require.NoError(t, err)
	assert.Len(t, sv.Solve(), 1323)
}

func TestSolveExactCountLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("full enumeration is slow")
	}
	sv, err := New(
		[3]HolePair{
			mustPair(t, "JH 6H"),
			mustPair(t, "4H 7S"),
			mustPair(t, "5D 8D"),
		},
		[3]Ordering{
			{3, 2, 1},
			{2, 3, 1},
			{2, 1, 3},
		},
	)
	require.NoError(t, err)
	assert.Len(t, sv.Solve(), 7606)
}

func TestSuggestBeforeSolve(t *testing.T) {
	sv := newSmallSolver(t)
	_, err := sv.Suggest()
	assert.ErrorIs(t, err, ErrPreconditionUnmet)
}

func TestFeedbackBeforeSuggest(t *testing.T) {
	sv := newSmallSolver(t)
	sv.Solve()
	_, err := sv.ApplyFeedback(Feedback{Green, Green, Green, Green, Green})
	assert.ErrorIs(t, err, ErrPreconditionUnmet)
}

func TestSuggestOnEmptyCandidates(t *testing.T) {
	sv := newSmallSolver(t)
	sv.Solve()
	sv.candidates = nil

	_, err := sv.Suggest()
	assert.ErrorIs(t, err, ErrEmptyCandidates)
}

func TestAllGreenClosure(t *testing.T) {
	sv := newSmallSolver(t)
	require.NotEmpty(t, sv.Solve())

	guess, err := sv.Suggest()
	require.NoError(t, err)

	remaining, err := sv.ApplyFeedback(Feedback{Green, Green, Green, Green, Green})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, guess, remaining[0])
}

func TestPruningIsMonotone(t *testing.T) {
	sv := newSmallSolver(t)
	candidates := sv.Solve()
	require.NotEmpty(t, candidates)
	answer := candidates[len(candidates)-1]

	for {
		before := len(sv.Remaining())
		guess, err := sv.Suggest()
		require.NoError(t, err)

		feedback := Compare(guess, answer)
		remaining, err := sv.ApplyFeedback(feedback)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(remaining), before)

		// The true answer always survives its own feedback
		assert.Contains(t, remaining, answer)

		if feedback.AllGreen() {
			require.Len(t, remaining, 1)
			assert.Equal(t, answer, remaining[0])
			return
		}
		require.Less(t, len(remaining), before, "feedback should make progress on this puzzle")
	}
}

func TestInconsistentFeedbackLeavesSetUnchanged(t *testing.T) {
	sv := newSmallSolver(t)
	require.NotEmpty(t, sv.Solve())

	_, err := sv.Suggest()
	require.NoError(t, err)
	before := len(sv.Remaining())

	// All-yellow against an entire candidate set that contains the guess
	// itself is unsatisfiable for this puzzle
	_, err = sv.ApplyFeedback(Feedback{Yellow, Yellow, Yellow, Yellow, Yellow})
	if err == nil {
		t.Skip("puzzle admits an all-yellow board against the suggestion")
	}
	assert.ErrorIs(t, err, ErrInconsistentFeedback)
	assert.Len(t, sv.Remaining(), before)
}

func TestSuggestIsDeterministic(t *testing.T) {
	first := newSmallSolver(t, WithSeed(42))
	second := newSmallSolver(t, WithSeed(42))
	first.Solve()
	second.Solve()

	guessA, err := first.Suggest()
	require.NoError(t, err)
	guessB, err := second.Suggest()
	require.NoError(t, err)
	assert.Equal(t, guessA, guessB)
}

func TestSamplingStillFindsAnswer(t *testing.T) {
	// Force sampling even on the small puzzle
	sv := newSmallSolver(t, WithSamplingThreshold(8), WithSampleSize(8))
	candidates := sv.Solve()
	require.NotEmpty(t, candidates)
	answer := candidates[0]

	for i := 0; i < 40; i++ {
		guess, err := sv.Suggest()
		require.NoError(t, err)
		feedback := Compare(guess, answer)
		remaining, err := sv.ApplyFeedback(feedback)
		require.NoError(t, err)
		if feedback.AllGreen() {
			require.Len(t, remaining, 1)
			assert.Equal(t, answer, remaining[0])
			return
		}
	}
	t.Fatal("solver failed to converge on the answer")
}

func TestSolveResetsGuessState(t *testing.T) {
	sv := newSmallSolver(t)
	sv.Solve()
	_, err := sv.Suggest()
	require.NoError(t, err)

	sv.Solve()
	_, err = sv.ApplyFeedback(Feedback{})
	assert.True(t, errors.Is(err, ErrPreconditionUnmet))
}
