package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/detrilemma/pokle-solver/internal/tui"
)

type PlayCmd struct {
	Puzzle string `arg:"" help:"Puzzle HCL file" type:"existingfile"`
	Seed   *int64 `help:"Override the sampling seed from the puzzle file"`
}

func (c *PlayCmd) Run(ctx *RunContext) error {
	sv, err := buildSolver(c.Puzzle, c.Seed, ctx)
	if err != nil {
		return err
	}

	candidates := sv.Solve()
	if len(candidates) == 0 {
		return fmt.Errorf("no board is consistent with the puzzle; check the hole cards and orderings")
	}

	model, err := tui.New(sv, ctx.Logger)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model).Run()
	return err
}
