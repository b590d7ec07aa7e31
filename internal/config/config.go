// Package config loads Pokle puzzle definitions from HCL files.
//
// A puzzle file names each player's hole cards and the strongest-to-weakest
// player ordering at each phase, with an optional solver tuning block:
//
//	player "1" { cards = "KH 6S" }
//	player "2" { cards = "8C 8H" }
//	player "3" { cards = "4H 9S" }
//
//	ordering {
//	  flop  = [2, 3, 1]
//	  turn  = [3, 2, 1]
//	  river = [3, 1, 2]
//	}
//
//	solver {
//	  sampling_threshold = 50
//	  sample_size        = 50
//	  seed               = 1
//	}
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/detrilemma/pokle-solver/internal/deck"
	"github.com/detrilemma/pokle-solver/internal/solver"
)

// Puzzle is the decoded puzzle file
type Puzzle struct {
	Players  []PlayerConfig `hcl:"player,block"`
	Ordering OrderingConfig `hcl:"ordering,block"`
	Solver   *SolverConfig  `hcl:"solver,block"`
}

// PlayerConfig is one player's hole cards
type PlayerConfig struct {
	Seat  string `hcl:"seat,label"`
	Cards string `hcl:"cards"`
}

// OrderingConfig holds the three phase orderings, each a permutation of the
// player indexes 1-3 from strongest to weakest
type OrderingConfig struct {
	Flop  []int `hcl:"flop"`
	Turn  []int `hcl:"turn"`
	River []int `hcl:"river"`
}

// SolverConfig tunes guess selection
type SolverConfig struct {
	SamplingThreshold *int   `hcl:"sampling_threshold,optional"`
	SampleSize        *int   `hcl:"sample_size,optional"`
	Seed              *int64 `hcl:"seed,optional"`
}

// Load reads and decodes a puzzle file
func Load(filename string) (*Puzzle, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var puzzle Puzzle
	if diags := gohcl.DecodeBody(file.Body, nil, &puzzle); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}
	return &puzzle, nil
}

// LoadBytes decodes a puzzle from an in-memory HCL document
func LoadBytes(src []byte, filename string) (*Puzzle, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var puzzle Puzzle
	if diags := gohcl.DecodeBody(file.Body, nil, &puzzle); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}
	return &puzzle, nil
}

// Holes returns the three hole pairs in seat order
func (p *Puzzle) Holes() ([3]solver.HolePair, error) {
	var holes [3]solver.HolePair
	if len(p.Players) != 3 {
		return holes, fmt.Errorf("puzzle must define exactly 3 players, got %d", len(p.Players))
	}

	seen := make(map[string]bool, 3)
	for i, player := range p.Players {
		seat := fmt.Sprintf("%d", i+1)
		if player.Seat != seat {
			return holes, fmt.Errorf("player blocks must be labelled 1-3 in order, got %q", player.Seat)
		}
		if seen[player.Seat] {
			return holes, fmt.Errorf("duplicate player %q", player.Seat)
		}
		seen[player.Seat] = true

		cards, err := deck.ParseCards(player.Cards)
		if err != nil {
			return holes, fmt.Errorf("player %s: %w", player.Seat, err)
		}
		if len(cards) != 2 {
			return holes, fmt.Errorf("player %s must have exactly 2 hole cards, got %d", player.Seat, len(cards))
		}
		holes[i] = solver.HolePair{cards[0], cards[1]}
	}
	return holes, nil
}

// Orderings returns the flop, turn and river orderings
func (p *Puzzle) Orderings() ([3]solver.Ordering, error) {
	var orderings [3]solver.Ordering
	for i, values := range [3][]int{p.Ordering.Flop, p.Ordering.Turn, p.Ordering.River} {
		phase := solver.Phase(i)
		if len(values) != 3 {
			return orderings, fmt.Errorf("%s ordering must list 3 players, got %d", phase, len(values))
		}
		ordering := solver.Ordering{values[0], values[1], values[2]}
		if !ordering.Valid() {
			return orderings, fmt.Errorf("%s ordering %v is not a permutation of players 1-3", phase, values)
		}
		orderings[phase] = ordering
	}
	return orderings, nil
}

// NewSolver builds a solver from the puzzle, applying the solver block's
// tuning before any extra options.
func (p *Puzzle) NewSolver(opts ...solver.Option) (*solver.Solver, error) {
	holes, err := p.Holes()
	if err != nil {
		return nil, err
	}
	orderings, err := p.Orderings()
	if err != nil {
		return nil, err
	}

	var all []solver.Option
	if p.Solver != nil {
		if p.Solver.SamplingThreshold != nil {
			all = append(all, solver.WithSamplingThreshold(*p.Solver.SamplingThreshold))
		}
		if p.Solver.SampleSize != nil {
			all = append(all, solver.WithSampleSize(*p.Solver.SampleSize))
		}
		if p.Solver.Seed != nil {
			all = append(all, solver.WithSeed(*p.Solver.Seed))
		}
	}
	all = append(all, opts...)

	return solver.New(holes, orderings, all...)
}
