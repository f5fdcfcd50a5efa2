package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play an interactive game against the bots"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot simulations and report statistics"`
	Odds     OddsCmd          `cmd:"" help:"Evaluate hit-or-stay for a given hand"`
	Train    TrainCmd         `cmd:"" help:"Train a Q-learning bot by self-play"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a trained q-table against the bots"`
	Server   ServerCmd        `cmd:"" help:"Run the WebSocket game server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("flipforbots"),
		kong.Description("Flip-7 bots, solver and server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// setupLogger builds a stderr logger at the requested verbosity
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// quietLogger discards everything; the TUI owns the terminal
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
