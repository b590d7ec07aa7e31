package main

import (
	"fmt"

	"github.com/detrilemma/pokle-solver/internal/config"
	"github.com/detrilemma/pokle-solver/internal/solver"
)

type SolveCmd struct {
	Puzzle string `arg:"" help:"Puzzle HCL file" type:"existingfile"`
	All    bool   `short:"a" help:"Print every candidate board, not just the count"`
	Seed   *int64 `help:"Override the sampling seed from the puzzle file"`
}

func (c *SolveCmd) Run(ctx *RunContext) error {
	sv, err := buildSolver(c.Puzzle, c.Seed, ctx)
	if err != nil {
		return err
	}

	candidates := sv.Solve()
	fmt.Printf("Possible boards found: %d\n", len(candidates))
	if len(candidates) == 0 {
		return nil
	}

	if c.All {
		for _, board := range candidates {
			fmt.Println(board)
		}
	}

	guess, err := sv.Suggest()
	if err != nil {
		return err
	}
	fmt.Printf("Suggested guess: %s\n", guess)
	return nil
}

func buildSolver(puzzlePath string, seed *int64, ctx *RunContext) (*solver.Solver, error) {
	puzzle, err := config.Load(puzzlePath)
	if err != nil {
		return nil, err
	}

	opts := []solver.Option{solver.WithLogger(ctx.Logger)}
	if seed != nil {
		opts = append(opts, solver.WithSeed(*seed))
	}
	return puzzle.NewSolver(opts...)
}
