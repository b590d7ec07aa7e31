// Package evaluator implements a five-to-seven card poker hand evaluator.
//
// Unlike lookup-table evaluators that reduce a hand to a single packed
// integer, this one also reports which cards realized the hand. The solver
// needs those identities: a candidate board is only legal if every board card
// shows up in somebody's best five at some phase.
//
// The shape is the classic one-pass bucket approach:
//
//  1. Bucket cards by rank and by suit
//  2. Detect flush (any suit with >=5 cards)
//  3. Detect straight over the distinct ranks, wheel included
//  4. Classify from strongest to weakest with early returns
package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/detrilemma/pokle-solver/internal/deck"
)

// Category is the hand type. Higher is stronger.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Short returns the two-letter abbreviation of the category
func (c Category) Short() string {
	switch c {
	case HighCard:
		return "HC"
	case OnePair:
		return "1P"
	case TwoPair:
		return "2P"
	case ThreeOfAKind:
		return "3K"
	case Straight:
		return "St"
	case Flush:
		return "Fl"
	case FullHouse:
		return "FH"
	case FourOfAKind:
		return "4K"
	case StraightFlush:
		return "SF"
	default:
		return "??"
	}
}

// Ranking is the totally ordered result of evaluating a hand.
//
// TieBreakers is compared lexicographically within a category; its length
// depends on the category. BestFive holds the cards that realized the hand,
// trimmed to the decisive ones: a high card keeps only the top card, paired
// categories keep only the paired cards, straights and flushes keep all five.
type Ranking struct {
	Category    Category
	TieBreakers []deck.Rank
	BestFive    []deck.Card
}

// Compare returns -1 if r is weaker than other, 0 if equal, 1 if stronger
func (r Ranking) Compare(other Ranking) int {
	if r.Category != other.Category {
		if r.Category < other.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(r.TieBreakers) && i < len(other.TieBreakers); i++ {
		if r.TieBreakers[i] != other.TieBreakers[i] {
			if r.TieBreakers[i] < other.TieBreakers[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String returns a readable form like "Two Pair [KH KD 4S 4C]"
func (r Ranking) String() string {
	cards := make([]string, len(r.BestFive))
	for i, c := range r.BestFive {
		cards[i] = c.String()
	}
	return fmt.Sprintf("%s [%s]", r.Category, strings.Join(cards, " "))
}

// Evaluate ranks the best five-card poker hand available in cards.
//
// The input is 5 to 7 distinct cards; duplicates and other counts are the
// caller's responsibility. Order matters in one narrow way: when equal-rank
// cards compete for a slot in BestFive, the earlier card wins, so callers
// pass hole cards first and board cards in board order.
func Evaluate(cards []deck.Card) Ranking {
	var rankGroups [15][]deck.Card
	var suitGroups [4][]deck.Card
	for _, card := range cards {
		rankGroups[card.Rank] = append(rankGroups[card.Rank], card)
		suitGroups[card.Suit] = append(suitGroups[card.Suit], card)
	}

	// Flush: at most one suit can reach five cards in a seven-card hand
	var flushCards []deck.Card
	for suit := 0; suit < 4; suit++ {
		if len(suitGroups[suit]) >= 5 {
			flushCards = sortedByRankDesc(suitGroups[suit])
			break
		}
	}

	// Straight over the distinct ranks, highest window first
	ranks := distinctRanksDesc(rankGroups)
	straightHigh := deck.Rank(0)
	for i := 0; i+4 < len(ranks); i++ {
		if ranks[i]-ranks[i+4] == 4 {
			straightHigh = ranks[i]
			break
		}
	}
	if straightHigh == 0 && hasWheelRanks(rankGroups) {
		straightHigh = deck.Five
	}

	if flushCards != nil && straightHigh != 0 {
		if r, ok := straightFlush(flushCards, straightHigh); ok {
			return r
		}
	}

	var threeRanks, pairRanks []deck.Rank
	quadRank := deck.Rank(0)
	for _, rank := range ranks {
		switch len(rankGroups[rank]) {
		case 4:
			quadRank = rank
		case 3:
			threeRanks = append(threeRanks, rank)
		case 2:
			pairRanks = append(pairRanks, rank)
		}
	}

	if quadRank != 0 {
		return Ranking{
			Category:    FourOfAKind,
			TieBreakers: []deck.Rank{quadRank},
			BestFive:    rankGroups[quadRank],
		}
	}

	if (len(threeRanks) > 0 && len(pairRanks) > 0) || len(threeRanks) > 1 {
		return fullHouse(rankGroups, threeRanks, pairRanks)
	}

	if flushCards != nil {
		top := flushCards[:5]
		return Ranking{
			Category:    Flush,
			TieBreakers: ranksOf(top),
			BestFive:    top,
		}
	}

	if straightHigh != 0 {
		return straight(cards, straightHigh)
	}

	if len(threeRanks) > 0 {
		return threeOfAKind(cards, rankGroups, threeRanks[0])
	}

	if len(pairRanks) >= 2 {
		return twoPair(cards, rankGroups, pairRanks)
	}

	if len(pairRanks) == 1 {
		return onePair(cards, rankGroups, pairRanks[0])
	}

	sorted := sortedByRankDesc(cards)
	return Ranking{
		Category:    HighCard,
		TieBreakers: ranksOf(sorted[:5]),
		BestFive:    sorted[:1],
	}
}

// straightFlush reports the straight flush at straightHigh if the flush suit
// actually holds the run. A wheel is only recognized when the overall
// straight high is five; the ace stays out of its BestFive because the
// window filter ranks it high.
func straightFlush(flushCards []deck.Card, straightHigh deck.Rank) (Ranking, bool) {
	present := make(map[deck.Rank]bool, len(flushCards))
	for _, c := range flushCards {
		present[c.Rank] = true
	}

	run := make([]deck.Card, 0, 5)
	for _, c := range flushCards {
		if c.Rank <= straightHigh && c.Rank >= straightHigh-4 {
			run = append(run, c)
		}
	}
	if len(run) > 5 {
		run = run[:5]
	}

	if straightHigh != deck.Five {
		for r := straightHigh - 4; r <= straightHigh; r++ {
			if !present[r] {
				return Ranking{}, false
			}
		}
		return Ranking{Category: StraightFlush, TieBreakers: []deck.Rank{straightHigh}, BestFive: run}, true
	}

	for _, r := range []deck.Rank{deck.Ace, deck.Five, deck.Four, deck.Three, deck.Two} {
		if !present[r] {
			return Ranking{}, false
		}
	}
	return Ranking{Category: StraightFlush, TieBreakers: []deck.Rank{deck.Five}, BestFive: run}, true
}

func fullHouse(rankGroups [15][]deck.Card, threeRanks, pairRanks []deck.Rank) Ranking {
	tripRank := threeRanks[0] // threeRanks is in descending rank order
	trips := rankGroups[tripRank]

	var pair []deck.Card
	var pairRank deck.Rank
	if len(pairRanks) > 0 {
		pairRank = pairRanks[0]
		pair = rankGroups[pairRank]
	} else {
		// Two trips: the lower one contributes two of its cards
		pairRank = threeRanks[1]
		pair = rankGroups[pairRank][:2]
	}

	best := make([]deck.Card, 0, 5)
	best = append(best, trips...)
	best = append(best, pair...)
	return Ranking{
		Category:    FullHouse,
		TieBreakers: []deck.Rank{tripRank, pairRank},
		BestFive:    best,
	}
}

// straight keeps the five highest cards inside the straight window. With
// duplicated ranks in the window the duplicates stay and the tail card is
// cut; the used-card accounting depends on exactly this choice.
func straight(cards []deck.Card, straightHigh deck.Rank) Ranking {
	var window []deck.Card
	if straightHigh == deck.Five {
		for _, c := range cards {
			if c.Rank == deck.Ace || (c.Rank >= deck.Two && c.Rank <= deck.Five) {
				window = append(window, c)
			}
		}
		sort.SliceStable(window, func(i, j int) bool {
			return wheelValue(window[i].Rank) > wheelValue(window[j].Rank)
		})
	} else {
		for _, c := range cards {
			if c.Rank <= straightHigh && c.Rank >= straightHigh-4 {
				window = append(window, c)
			}
		}
		sort.SliceStable(window, func(i, j int) bool { return window[i].Rank > window[j].Rank })
	}
	if len(window) > 5 {
		window = window[:5]
	}
	return Ranking{Category: Straight, TieBreakers: []deck.Rank{straightHigh}, BestFive: window}
}

func threeOfAKind(cards []deck.Card, rankGroups [15][]deck.Card, tripRank deck.Rank) Ranking {
	trips := rankGroups[tripRank]
	kickers := kickerRanks(cards, deck.NewCardSet(trips), 2)
	return Ranking{
		Category:    ThreeOfAKind,
		TieBreakers: append([]deck.Rank{tripRank}, kickers...),
		BestFive:    trips,
	}
}

func twoPair(cards []deck.Card, rankGroups [15][]deck.Card, pairRanks []deck.Rank) Ranking {
	high, low := pairRanks[0], pairRanks[1]
	best := make([]deck.Card, 0, 4)
	best = append(best, rankGroups[high]...)
	best = append(best, rankGroups[low]...)

	kicker := deck.Rank(0)
	if ks := kickerRanks(cards, deck.NewCardSet(best), 1); len(ks) > 0 {
		kicker = ks[0]
	}
	return Ranking{
		Category:    TwoPair,
		TieBreakers: []deck.Rank{high, low, kicker},
		BestFive:    best,
	}
}

func onePair(cards []deck.Card, rankGroups [15][]deck.Card, pairRank deck.Rank) Ranking {
	pair := rankGroups[pairRank]
	kickers := kickerRanks(cards, deck.NewCardSet(pair), 3)
	return Ranking{
		Category:    OnePair,
		TieBreakers: append([]deck.Rank{pairRank}, kickers...),
		BestFive:    pair,
	}
}

// kickerRanks returns the n highest ranks among cards outside used
func kickerRanks(cards []deck.Card, used deck.CardSet, n int) []deck.Rank {
	remaining := make([]deck.Card, 0, len(cards))
	for _, c := range cards {
		if !used.Contains(c) {
			remaining = append(remaining, c)
		}
	}
	remaining = sortedByRankDesc(remaining)
	if len(remaining) > n {
		remaining = remaining[:n]
	}
	return ranksOf(remaining)
}

func sortedByRankDesc(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	copy(out, cards)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}

func distinctRanksDesc(rankGroups [15][]deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, 0, 7)
	for r := deck.Ace; r >= deck.Two; r-- {
		if len(rankGroups[r]) > 0 {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

func hasWheelRanks(rankGroups [15][]deck.Card) bool {
	for _, r := range []deck.Rank{deck.Ace, deck.Five, deck.Four, deck.Three, deck.Two} {
		if len(rankGroups[r]) == 0 {
			return false
		}
	}
	return true
}

func wheelValue(r deck.Rank) int {
	if r == deck.Ace {
		return 1
	}
	return int(r)
}

func ranksOf(cards []deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}
