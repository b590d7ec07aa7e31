package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

type CLI struct {
	LogLevel string `help:"Set the log-level" enum:"debug,info,warn,error" default:"info"`
	LogFile  string `help:"Write logs to a file instead of stderr"`

	Solve  SolveCmd  `cmd:"" help:"Enumerate every board consistent with a puzzle file"`
	Play   PlayCmd   `cmd:"" help:"Solve a puzzle file and run the interactive guess loop"`
	Bridge BridgeCmd `cmd:"" help:"Serve the solver over a local websocket for the browser userscript"`
}

// RunContext carries shared dependencies into subcommands
type RunContext struct {
	Logger *log.Logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokle"),
		kong.Description("Solver for the three-player Pokle puzzle"),
	)

	logger, closer, err := createLogger(cli.LogFile, cli.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		ctx.Exit(1)
	}
	defer func() {
		if err := closer(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()

	err = ctx.Run(&RunContext{Logger: logger})
	ctx.FatalIfErrorf(err)
}

func createLogger(logFile, level string) (*log.Logger, func() error, error) {
	nilCloser := func() error { return nil }

	parsedLevel, err := log.ParseLevel(level)
	if err != nil {
		return nil, nilCloser, fmt.Errorf("error parsing level %s: %w", level, err)
	}

	options := log.Options{
		ReportTimestamp: true,
		Prefix:          "pokle",
		TimeFormat:      "15:04:05",
		Level:           parsedLevel,
	}

	if logFile == "" {
		return log.NewWithOptions(os.Stderr, options), nilCloser, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return nil, nilCloser, fmt.Errorf("failed to create log file: %w", err)
	}
	return log.NewWithOptions(f, options), f.Close, nil
}
