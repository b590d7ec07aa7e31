package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/detrilemma/pokle-solver/internal/bridge"
)

type BridgeCmd struct {
	Listen string `help:"Address to listen on" default:"127.0.0.1:8973"`
}

func (c *BridgeCmd) Run(ctx *RunContext) error {
	runCtx, cancel := signalContext()
	defer cancel()

	server := bridge.NewServer(ctx.Logger, quartz.NewReal())
	return server.ListenAndServe(runCtx, c.Listen)
}

// signalContext returns a context cancelled on interrupt signals
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}
